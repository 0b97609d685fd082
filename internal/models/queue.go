package models

import "time"

// QueuedMessage is a flagged channel message awaiting moderator disposition.
type QueuedMessage struct {
	GuildID    string    `json:"guild_id"`
	ChannelID  string    `json:"channel_id"`
	MessageID  string    `json:"message_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Target converts the queued message to a report target reference.
func (q *QueuedMessage) Target() *TargetMessage {
	return &TargetMessage{
		GuildID:    q.GuildID,
		ChannelID:  q.ChannelID,
		MessageID:  q.MessageID,
		AuthorID:   q.AuthorID,
		AuthorName: q.AuthorName,
		Content:    q.Content,
	}
}

// LedgerEntry is one author's accumulated penalty state.
type LedgerEntry struct {
	AuthorID string `json:"author_id"`
	Points   int    `json:"points"`
	Banned   bool   `json:"banned"`
}
