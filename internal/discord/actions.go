package discord

import (
	"fmt"

	"modbot/backend/internal/models"
)

// React attaches a reaction to a previously observed channel message.
// Implements modqueue.MessageActions.
func (b *BotService) React(m *models.QueuedMessage, emoji string) error {
	return b.Session.MessageReactionAdd(m.ChannelID, m.MessageID, emoji)
}

// Delete removes a channel message. Implements modqueue.MessageActions.
func (b *BotService) Delete(m *models.QueuedMessage) error {
	return b.Session.ChannelMessageDelete(m.ChannelID, m.MessageID)
}

// FetchMessage resolves a pasted message link into a target reference.
// Implements report.MessageFetcher.
func (b *BotService) FetchMessage(channelID, messageID string) (*models.TargetMessage, error) {
	msg, err := b.Session.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, fmt.Errorf("fetch message: %w", err)
	}
	if msg.Author == nil {
		return nil, fmt.Errorf("fetch message: no author on %s", messageID)
	}

	guildID := msg.GuildID
	if guildID == "" {
		// REST fetches can omit the guild; recover it for monitored channels.
		b.mu.RLock()
		guildID = b.monitored[channelID]
		b.mu.RUnlock()
	}
	return &models.TargetMessage{
		GuildID:    guildID,
		ChannelID:  channelID,
		MessageID:  messageID,
		AuthorID:   msg.Author.ID,
		AuthorName: msg.Author.Username,
		Content:    msg.Content,
	}, nil
}
