// Package modqueue serializes moderator disposition of flagged messages. One
// guild has one FIFO queue and one disposition stage; reactions posted in the
// guild's moderation channel walk the head of the queue through the
// categorization tree and feed the per-author point ledger.
package modqueue

import (
	"log/slog"
	"sync"
	"time"

	"modbot/backend/internal/config"
	"modbot/backend/internal/menu"
	"modbot/backend/internal/models"
)

// Stage is the pending question for the message at the head of a guild's
// queue. Reactions outside the current stage's option set are ignored.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingCategory
	StageAwaitingFalseConfirm
	StageAwaitingIntent
	StageAwaitingSeverity
)

// MessageActions are the platform side effects a disposition can require.
type MessageActions interface {
	React(m *models.QueuedMessage, emoji string) error
	Delete(m *models.QueuedMessage) error
}

// Publisher receives moderation events for the live feed.
type Publisher interface {
	Publish(models.ModEvent)
}

// Resolution is the outcome of one moderator reaction: acknowledgment text
// and, for intermediate stages, the follow-up prompt to post.
type Resolution struct {
	Replies []string
	Prompt  *menu.Prompt
}

type guildState struct {
	queue []*models.QueuedMessage
	stage Stage
}

// Service owns the per-guild queues and the point ledger. Every disposition
// runs under one lock, so dequeue, ledger update, and threshold check are
// atomic with respect to each other.
type Service struct {
	mu      sync.Mutex
	guilds  map[string]*guildState
	ledger  *Ledger
	actions MessageActions
	events  Publisher
	logger  *slog.Logger
}

// NewService creates the moderation queue service.
func NewService(ledger *Ledger, actions MessageActions, events Publisher, logger *slog.Logger) *Service {
	return &Service{
		guilds:  make(map[string]*guildState),
		ledger:  ledger,
		actions: actions,
		events:  events,
		logger:  logger,
	}
}

// Ledger exposes the point ledger for the admin API and the dispatcher.
func (s *Service) Ledger() *Ledger { return s.ledger }

// Enqueue appends a flagged message to its guild's queue and returns the
// category prompt to post in the moderation channel. The queue is unbounded.
func (s *Service) Enqueue(q *models.QueuedMessage) *menu.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.EnqueuedAt.IsZero() {
		q.EnqueuedAt = time.Now()
	}
	g := s.guild(q.GuildID)
	g.queue = append(g.queue, q)
	if g.stage == StageIdle {
		g.stage = StageAwaitingCategory
	}

	s.events.Publish(models.ModEvent{
		Type:     models.EventMessageFlagged,
		GuildID:  q.GuildID,
		AuthorID: q.AuthorID,
		Detail:   q.Content,
		Time:     time.Now(),
	})
	s.logger.Info("message enqueued", "guild", q.GuildID, "author", q.AuthorID, "depth", len(g.queue))
	return modCategoryPrompt
}

// HandleReaction interprets one moderator reaction against the current stage
// for the guild. Reactions on an empty queue, or emoji outside the stage's
// option set, are no-ops.
func (s *Service) HandleReaction(guildID, emoji string) Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guild(guildID)
	if len(g.queue) == 0 {
		return Resolution{}
	}
	head := g.queue[0]

	switch g.stage {
	case StageAwaitingCategory:
		return s.handleCategory(g, head, emoji)
	case StageAwaitingFalseConfirm:
		switch emoji {
		case "✅":
			g.stage = StageAwaitingIntent
			return Resolution{Prompt: intentPrompt(head.Content)}
		case "❌":
			s.dequeue(g, head, "no false information")
			return Resolution{Replies: []string{ackNoFalse}}
		}
	case StageAwaitingIntent:
		switch emoji {
		case "⬅️":
			g.stage = StageAwaitingSeverity
			return Resolution{Prompt: severityPrompt(head.Content)}
		case "➡️":
			s.dequeue(g, head, "satire/parody")
			return Resolution{Replies: []string{ackDeferred}}
		}
	case StageAwaitingSeverity:
		return s.handleSeverity(g, head, emoji)
	}
	return Resolution{}
}

func (s *Service) handleCategory(g *guildState, head *models.QueuedMessage, emoji string) Resolution {
	switch emoji {
	case "🔴":
		s.react(head, "🔴")
		s.dequeue(g, head, "harassment/bullying")
		return Resolution{Replies: []string{ackHarassment}}
	case "🟠":
		s.react(head, "🟠")
		g.stage = StageAwaitingFalseConfirm
		return Resolution{Prompt: falseConfirmPrompt(head.Content)}
	case "🟡":
		s.react(head, "🟡")
		s.dequeue(g, head, "violence/graphic imagery")
		return Resolution{Replies: []string{ackViolence}}
	case "🟢":
		s.react(head, "🟢")
		s.dequeue(g, head, "spam")
		return Resolution{Replies: []string{ackSpam}}
	case "🔵":
		s.react(head, "🔵")
		s.dequeue(g, head, "other harmful content")
		return Resolution{Replies: []string{ackOther}}
	}
	return Resolution{}
}

func (s *Service) handleSeverity(g *guildState, head *models.QueuedMessage, emoji string) Resolution {
	var reply string
	var pts int

	switch emoji {
	case "1️⃣":
		if err := s.actions.Delete(head); err != nil {
			s.logger.Error("delete failed", "guild", head.GuildID, "message", head.MessageID, "err", err)
		}
		reply = ackTakenDown
		pts = config.PointsImmediateHarm
	case "2️⃣":
		s.react(head, config.FlagEmoji)
		reply = ackFlagged
		pts = config.PointsModerateHarm
	case "3️⃣":
		reply = ackDeferred
		pts = config.PointsLowHarm
	default:
		return Resolution{}
	}

	s.dequeue(g, head, "false information, severity rated")
	replies := []string{reply}

	total, crossed := s.ledger.Add(head.AuthorID, pts)
	s.events.Publish(models.ModEvent{
		Type:     models.EventPointsAdded,
		GuildID:  head.GuildID,
		AuthorID: head.AuthorID,
		Points:   pts,
		Total:    total,
		Time:     time.Now(),
	})
	if crossed {
		replies = append(replies, banNotice)
		s.events.Publish(models.ModEvent{
			Type:     models.EventBanTriggered,
			GuildID:  head.GuildID,
			AuthorID: head.AuthorID,
			Total:    total,
			Time:     time.Now(),
		})
		s.logger.Warn("ban threshold crossed", "author", head.AuthorID, "total", total)
	}
	return Resolution{Replies: replies}
}

// dequeue removes the head exactly once and advances the stage: back to the
// category question while messages remain, idle otherwise.
func (s *Service) dequeue(g *guildState, head *models.QueuedMessage, detail string) {
	g.queue = g.queue[1:]
	if len(g.queue) > 0 {
		g.stage = StageAwaitingCategory
	} else {
		g.stage = StageIdle
	}
	s.events.Publish(models.ModEvent{
		Type:     models.EventDisposition,
		GuildID:  head.GuildID,
		AuthorID: head.AuthorID,
		Detail:   detail,
		Time:     time.Now(),
	})
	s.logger.Info("message disposed", "guild", head.GuildID, "author", head.AuthorID, "detail", detail)
}

func (s *Service) react(m *models.QueuedMessage, emoji string) {
	if err := s.actions.React(m, emoji); err != nil {
		s.logger.Error("react failed", "guild", m.GuildID, "message", m.MessageID, "err", err)
	}
}

func (s *Service) guild(guildID string) *guildState {
	g, ok := s.guilds[guildID]
	if !ok {
		g = &guildState{}
		s.guilds[guildID] = g
	}
	return g
}

// QueueSnapshot returns a copy of a guild's pending messages, head first.
func (s *Service) QueueSnapshot(guildID string) []models.QueuedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guild(guildID)
	out := make([]models.QueuedMessage, len(g.queue))
	for i, q := range g.queue {
		out[i] = *q
	}
	return out
}

// Depth returns the total number of pending messages across all guilds.
func (s *Service) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, g := range s.guilds {
		total += len(g.queue)
	}
	return total
}
