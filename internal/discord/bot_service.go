// Package discord handles the integration with the Discord gateway. It is
// responsible for receiving platform events, routing them to the report
// registry or the moderation queue, and performing the outbound actions the
// core asks for (send message, add reaction, delete message).
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"modbot/backend/internal/config"
	"modbot/backend/internal/feed"
	"modbot/backend/internal/menu"
	"modbot/backend/internal/models"
	"modbot/backend/internal/modqueue"
	"modbot/backend/internal/report"
	"modbot/backend/internal/signals"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Clients bundles the external signal services the dispatcher consults.
type Clients struct {
	Claims     signals.ClaimChecker
	Toxicity   signals.ToxicityScorer
	Summarizer signals.Summarizer // optional
}

// BotService owns the Discord session and routes inbound events. Reactions
// in a guild's moderation channel drive the moderation queue; messages and
// reactions in DMs drive the sender's report session; messages in the
// monitored channel are evaluated by the signal clients.
type BotService struct {
	Session *discordgo.Session
	Reports *report.Registry
	Queue   *modqueue.Service
	Feed    *feed.Hub

	clients   Clients
	groupName string
	logger    *slog.Logger

	mu          sync.RWMutex
	modChannels map[string]string // guild ID -> moderation channel ID
	monitored   map[string]string // monitored channel ID -> guild ID

	cancel context.CancelFunc
}

// NewBotService builds the session and wires the report registry and
// moderation queue around it.
func NewBotService(token, groupName string, clients Clients, hub *feed.Hub, logger *slog.Logger) (*BotService, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsDirectMessageReactions |
		discordgo.IntentsMessageContent

	b := &BotService{
		Session:     session,
		Feed:        hub,
		clients:     clients,
		groupName:   groupName,
		logger:      logger,
		modChannels: make(map[string]string),
		monitored:   make(map[string]string),
	}
	b.Reports = report.NewRegistry(b, logger)
	b.Queue = modqueue.NewService(modqueue.NewLedger(config.BanThresholdPoints), b, hub, logger)

	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onMessageUpdate)
	session.AddHandler(b.onReactionAdd)
	return b, nil
}

// Start opens the gateway connection and begins the idle-report sweeper.
func (b *BotService) Start(ctx context.Context) error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	go b.sweepLoop(runCtx)
	return nil
}

// Stop closes the gateway connection.
func (b *BotService) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	if err := b.Session.Close(); err != nil {
		b.logger.Error("discord close", "err", err)
	}
}

// GuildCount returns the number of guilds with a discovered moderation
// channel.
func (b *BotService) GuildCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.modChannels)
}

func (b *BotService) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := b.Reports.Sweep(config.ReportIdleExpiry); n > 0 {
				b.logger.Info("idle report sessions swept", "count", n)
			}
		}
	}
}

func (b *BotService) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("connected to Discord", "user", r.User.Username, "guilds", len(r.Guilds))
}

// onGuildCreate discovers the monitored and moderation channels by the
// naming convention "<group>" / "<group>-mod". The association is fixed for
// the lifetime of the session.
func (b *BotService) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	modName := b.groupName + "-mod"
	for _, ch := range g.Channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		switch ch.Name {
		case b.groupName:
			b.monitored[ch.ID] = g.ID
		case modName:
			b.modChannels[g.ID] = ch.ID
		}
	}
	if _, ok := b.modChannels[g.ID]; !ok {
		b.logger.Warn("guild has no moderation channel", "guild", g.ID, "expected", modName)
	}
}

func (b *BotService) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		b.handleDM(m.Message)
		return
	}
	b.handleChannelMessage(m.Message)
}

// onMessageUpdate re-evaluates edited channel messages like new ones. An
// edited DM is fed back into the sender's session; once the report is gone
// the edit can no longer be applied and the user is told so.
func (b *BotService) onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}
	if m.GuildID != "" {
		b.handleChannelMessage(m.Message)
		return
	}

	turn, ok := b.Reports.Handle(m.Author.ID, report.MessageInput{Content: m.Content})
	if !ok {
		b.send(m.ChannelID, "Sorry, we cannot process your edited response because the report has "+
			"already been sent to the moderators. Please submit another report with your edited response.")
		return
	}
	b.deliver(m.ChannelID, turn)
}

func (b *BotService) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}

	if r.GuildID == "" {
		turn, ok := b.Reports.Handle(r.UserID, report.ReactionInput{Emoji: r.Emoji.Name})
		if !ok {
			return
		}
		b.deliver(r.ChannelID, turn)
		return
	}

	b.mu.RLock()
	modCh := b.modChannels[r.GuildID]
	_, watched := b.monitored[r.ChannelID]
	b.mu.RUnlock()

	// A flag reaction on a monitored message opens a report in the
	// reactor's DMs with the target already filled in.
	if watched && r.Emoji.Name == config.FlagEmoji {
		b.seedReport(r.UserID, r.ChannelID, r.MessageID)
		return
	}
	if modCh == "" || modCh != r.ChannelID {
		return
	}

	res := b.Queue.HandleReaction(r.GuildID, r.Emoji.Name)
	for _, reply := range res.Replies {
		b.send(modCh, reply)
	}
	if res.Prompt != nil {
		b.postPrompt(modCh, res.Prompt)
	}
}

// seedReport opens a report session for the user with the flagged message as
// its target and continues the flow over DM. An existing session wins and
// the hand-off is dropped.
func (b *BotService) seedReport(userID, channelID, messageID string) {
	target, err := b.FetchMessage(channelID, messageID)
	if err != nil {
		b.logger.Warn("flag reaction on unreadable message", "channel", channelID, "message", messageID, "err", err)
		return
	}
	turn, ok := b.Reports.Seed(userID, target)
	if !ok {
		return
	}
	dm, err := b.Session.UserChannelCreate(userID)
	if err != nil {
		b.logger.Error("dm channel create failed", "user", userID, "err", err)
		return
	}
	b.deliver(dm.ID, turn)
}

func (b *BotService) handleDM(m *discordgo.Message) {
	if strings.EqualFold(strings.TrimSpace(m.Content), report.HelpKeyword) {
		b.send(m.ChannelID, report.HelpText)
		return
	}

	turn, ok := b.Reports.Handle(m.Author.ID, report.MessageInput{Content: m.Content})
	if !ok {
		return
	}
	b.deliver(m.ChannelID, turn)
}

// handleChannelMessage runs the signal clients over a monitored-channel
// message and forwards it for moderator review when flagged. Upstream
// failures are logged and the forward step is skipped.
func (b *BotService) handleChannelMessage(m *discordgo.Message) {
	b.mu.RLock()
	guildID, watched := b.monitored[m.ChannelID]
	modCh := b.modChannels[guildID]
	b.mu.RUnlock()
	if !watched || modCh == "" {
		return
	}

	if b.Queue.Ledger().IsBanned(m.Author.ID) {
		b.logger.Info("skipping message from banned author", "author", m.Author.ID)
		return
	}

	ctx := context.Background()
	label, err := b.clients.Claims.CheckClaim(ctx, m.Content)
	if err != nil {
		b.logger.Warn("claim check failed, skipping forward", "err", err)
		return
	}
	if !signals.Flagged(label) {
		return
	}

	b.send(modCh, fmt.Sprintf("Forwarded message:\n%s: \"%s\"", m.Author.Username, m.Content))
	b.send(modCh, "This message has been fact checked as being potentially false")

	if scores, err := b.clients.Toxicity.ScoreToxicity(ctx, m.Content); err != nil {
		b.logger.Warn("toxicity scoring failed", "err", err)
	} else if formatted, err := json.MarshalIndent(scores, "", "  "); err == nil {
		b.send(modCh, codeFormat(string(formatted)))
	}

	b.postSummary(ctx, modCh, m.Content)

	prompt := b.Queue.Enqueue(&models.QueuedMessage{
		GuildID:    guildID,
		ChannelID:  m.ChannelID,
		MessageID:  m.ID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		Content:    m.Content,
	})
	b.postPrompt(modCh, prompt)
}

// postSummary adds a document summary to the forward when the flagged
// message links somewhere and a summarizer is configured.
func (b *BotService) postSummary(ctx context.Context, modCh, content string) {
	if b.clients.Summarizer == nil {
		return
	}
	link := urlPattern.FindString(content)
	if link == "" {
		return
	}
	summary, err := b.clients.Summarizer.Summarize(ctx, link)
	if err != nil {
		b.logger.Warn("summary failed", "url", link, "err", err)
		return
	}
	b.send(modCh, fmt.Sprintf("Linked document: %s\n%s", summary.Title, summary.Content))
}

// forwardReport hands a completed report off to the moderation queue path:
// the forward text is posted in the target guild's moderation channel and
// the target message joins the queue for disposition.
func (b *BotService) forwardReport(r *models.Report) {
	b.mu.RLock()
	modCh := b.modChannels[r.Target.GuildID]
	b.mu.RUnlock()
	if modCh == "" {
		b.logger.Warn("no moderation channel for reported guild", "guild", r.Target.GuildID)
		return
	}

	b.send(modCh, report.FormatForward(r))
	b.Feed.Publish(models.ModEvent{
		Type:     models.EventReportFiled,
		GuildID:  r.Target.GuildID,
		AuthorID: r.Target.AuthorID,
		Detail:   r.PrimaryCategory,
		Time:     time.Now(),
	})

	prompt := b.Queue.Enqueue(&models.QueuedMessage{
		GuildID:    r.Target.GuildID,
		ChannelID:  r.Target.ChannelID,
		MessageID:  r.Target.MessageID,
		AuthorID:   r.Target.AuthorID,
		AuthorName: r.Target.AuthorName,
		Content:    r.Target.Content,
	})
	b.postPrompt(modCh, prompt)
}

// deliver sends a machine turn back to the reporting user in order: replies
// first, then the next prompt with its option reactions attached.
func (b *BotService) deliver(channelID string, turn report.Turn) {
	for _, reply := range turn.Replies {
		b.send(channelID, reply)
	}
	if turn.Prompt != nil {
		b.postPrompt(channelID, turn.Prompt)
	}
	if turn.Completed != nil {
		b.forwardReport(turn.Completed)
	}
}

func (b *BotService) send(channelID, text string) {
	if _, err := b.Session.ChannelMessageSend(channelID, text); err != nil {
		b.logger.Error("send failed", "channel", channelID, "err", err)
	}
}

func (b *BotService) postPrompt(channelID string, p *menu.Prompt) {
	msg, err := b.Session.ChannelMessageSend(channelID, p.Render())
	if err != nil {
		b.logger.Error("prompt send failed", "channel", channelID, "err", err)
		return
	}
	for _, emoji := range p.Emojis() {
		if err := b.Session.MessageReactionAdd(channelID, msg.ID, emoji); err != nil {
			b.logger.Error("prompt reaction failed", "channel", channelID, "emoji", emoji, "err", err)
		}
	}
}

func codeFormat(text string) string {
	return "```" + text + "```"
}
