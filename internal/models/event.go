package models

import "time"

// Moderation event types published on the feed.
const (
	EventMessageFlagged = "message_flagged"
	EventDisposition    = "disposition"
	EventPointsAdded    = "points_added"
	EventBanTriggered   = "ban_triggered"
	EventReportFiled    = "report_filed"
)

// ModEvent is one entry on the live moderation feed.
type ModEvent struct {
	Type     string    `json:"type"`
	GuildID  string    `json:"guild_id,omitempty"`
	AuthorID string    `json:"author_id,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	Points   int       `json:"points,omitempty"`
	Total    int       `json:"total,omitempty"`
	Time     time.Time `json:"time"`
}
