package models

// ReportState is the position of a report inside the collection flow.
type ReportState string

const (
	StateAwaitingStart         ReportState = "awaiting_start"
	StateCollectingReason      ReportState = "collecting_reason"
	StateCollectingSubreason   ReportState = "collecting_subreason"
	StateCollectingDisinfoType ReportState = "collecting_disinfo_type"
	StateCollectingDetails     ReportState = "collecting_details"
	StateAwaitingBlockDecision ReportState = "awaiting_block_decision"
	StateComplete              ReportState = "complete"
	StateCancelled             ReportState = "cancelled"
)

// Terminal reports whether the state ends the flow.
func (s ReportState) Terminal() bool {
	return s == StateComplete || s == StateCancelled
}

// TargetMessage is a reference to the channel message a report is about.
type TargetMessage struct {
	GuildID    string `json:"guild_id"`
	ChannelID  string `json:"channel_id"`
	MessageID  string `json:"message_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

// Report is one user-initiated structured abuse complaint. At most one
// report is active per reporting user at a time.
type Report struct {
	ID         string      `json:"id"`
	ReporterID string      `json:"reporter_id"`
	State      ReportState `json:"state"`
	Target     *TargetMessage

	PrimaryCategory string `json:"primary_category"`
	Subcategory     string `json:"subcategory"`
	DisinfoType     string `json:"disinfo_type"`
	HarmDetails     string `json:"harm_details"`
	BlockRequested  bool   `json:"block_requested"`
}
