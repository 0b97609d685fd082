// Package report implements the per-user report collection flow: an explicit
// state machine advanced one inbound event at a time, and a session registry
// that enforces the single-active-report invariant.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"modbot/backend/internal/menu"
	"modbot/backend/internal/models"
)

// Input is one user turn: an ordinary reply or a reaction on a prompt.
type Input interface{ isInput() }

// MessageInput is an inbound direct message.
type MessageInput struct{ Content string }

// ReactionInput is a reaction added to one of the bot's prompts.
type ReactionInput struct{ Emoji string }

func (MessageInput) isInput()  {}
func (ReactionInput) isInput() {}

// Turn is the ordered output of one machine step. Replies are sent back to
// the reporting user in order, then the prompt (if any) is posted with its
// option reactions attached. Completed is set exactly once, when the report
// reaches its terminal complete state.
type Turn struct {
	Replies   []string
	Prompt    *menu.Prompt
	Completed *models.Report
}

// MessageFetcher resolves a pasted message link into the target message.
type MessageFetcher interface {
	FetchMessage(channelID, messageID string) (*models.TargetMessage, error)
}

// Machine drives one user's report through the collection flow. The handler
// returns immediately on every turn; the next matching inbound event is
// routed back in by the registry. Input that does not match the current
// state is a silent no-op.
type Machine struct {
	report       *models.Report
	fetch        MessageFetcher
	awaitingLink bool
	awaitingText bool
	lastActivity time.Time
}

// NewMachine creates a machine for a user's first `report` DM.
func NewMachine(reporterID string, fetch MessageFetcher) *Machine {
	return &Machine{
		report: &models.Report{
			ID:          uuid.New().String(),
			ReporterID:  reporterID,
			State:       models.StateAwaitingStart,
			DisinfoType: DisinfoNotApplicable,
		},
		fetch:        fetch,
		lastActivity: time.Now(),
	}
}

// NewSeededMachine creates a machine whose target message is already known,
// the hand-off used when a flagged channel message opens a report directly.
func NewSeededMachine(reporterID string, target *models.TargetMessage) *Machine {
	m := NewMachine(reporterID, nil)
	m.report.Target = target
	m.report.State = models.StateCollectingReason
	return m
}

// Report exposes the report under collection.
func (m *Machine) Report() *models.Report { return m.report }

// IdleSince returns the time of the last handled turn.
func (m *Machine) IdleSince() time.Time { return m.lastActivity }

// Handle advances the machine by one turn.
func (m *Machine) Handle(in Input) Turn {
	if m.report.State.Terminal() {
		return Turn{}
	}
	m.lastActivity = time.Now()

	if msg, ok := in.(MessageInput); ok {
		if strings.EqualFold(strings.TrimSpace(msg.Content), CancelKeyword) {
			m.report.State = models.StateCancelled
			return Turn{Replies: []string{replyCancelled}}
		}
	}

	switch m.report.State {
	case models.StateAwaitingStart:
		return m.handleAwaitingStart(in)
	case models.StateCollectingReason:
		return m.handleCollectingReason(in)
	case models.StateCollectingSubreason:
		return m.handleCollectingSubreason(in)
	case models.StateCollectingDisinfoType:
		return m.handleCollectingDisinfoType(in)
	case models.StateCollectingDetails:
		return m.handleCollectingDetails(in)
	case models.StateAwaitingBlockDecision:
		return m.handleAwaitingBlockDecision(in)
	}
	return Turn{}
}

func (m *Machine) handleAwaitingStart(in Input) Turn {
	msg, ok := in.(MessageInput)
	if !ok {
		return Turn{}
	}

	if !m.awaitingLink {
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(msg.Content)), StartKeyword) {
			return Turn{}
		}
		m.awaitingLink = true
		return Turn{Replies: []string{replyIntro, replyAskLink}}
	}

	channelID, messageID, ok := ParseMessageLink(msg.Content)
	if !ok {
		return Turn{Replies: []string{replyBadLink}}
	}
	target, err := m.fetch.FetchMessage(channelID, messageID)
	if err != nil {
		return Turn{Replies: []string{replyGoneMessage}}
	}

	m.report.Target = target
	m.report.State = models.StateCollectingReason
	return Turn{
		Replies: []string{
			"I found this message:",
			fmt.Sprintf("%s: \"%s\"", target.AuthorName, target.Content),
		},
		Prompt: categoryPrompt,
	}
}

func (m *Machine) handleCollectingReason(in Input) Turn {
	r, ok := in.(ReactionInput)
	if !ok {
		return Turn{}
	}
	category, ok := categoryByEmoji[r.Emoji]
	if !ok {
		return Turn{}
	}
	m.report.PrimaryCategory = category
	m.report.State = models.StateCollectingSubreason
	return Turn{Prompt: subcategoryPrompts[category]}
}

func (m *Machine) handleCollectingSubreason(in Input) Turn {
	r, ok := in.(ReactionInput)
	if !ok {
		return Turn{}
	}
	opt, ok := subcategoryPrompts[m.report.PrimaryCategory].Find(r.Emoji)
	if !ok {
		return Turn{}
	}
	m.report.Subcategory = opt.Label

	if m.report.PrimaryCategory == CategoryFalseInfo {
		m.report.State = models.StateCollectingDisinfoType
		return Turn{Prompt: disinfoPrompt}
	}
	m.report.State = models.StateCollectingDetails
	return Turn{Prompt: detailsPrompt}
}

func (m *Machine) handleCollectingDisinfoType(in Input) Turn {
	r, ok := in.(ReactionInput)
	if !ok {
		return Turn{}
	}
	opt, ok := disinfoPrompt.Find(r.Emoji)
	if !ok {
		return Turn{}
	}
	m.report.DisinfoType = opt.Label
	m.report.State = models.StateCollectingDetails
	return Turn{Prompt: detailsPrompt}
}

func (m *Machine) handleCollectingDetails(in Input) Turn {
	if m.awaitingText {
		msg, ok := in.(MessageInput)
		if !ok {
			return Turn{}
		}
		m.awaitingText = false
		m.report.HarmDetails = msg.Content
		m.report.State = models.StateAwaitingBlockDecision
		return Turn{
			Replies: []string{"We have received the following response: " + msg.Content},
			Prompt:  blockPrompt,
		}
	}

	r, ok := in.(ReactionInput)
	if !ok {
		return Turn{}
	}
	switch r.Emoji {
	case "✅":
		m.awaitingText = true
		return Turn{Replies: []string{replyAskDetails}}
	case "❌":
		m.report.State = models.StateAwaitingBlockDecision
		return Turn{Prompt: blockPrompt}
	}
	return Turn{}
}

func (m *Machine) handleAwaitingBlockDecision(in Input) Turn {
	r, ok := in.(ReactionInput)
	if !ok {
		return Turn{}
	}
	switch r.Emoji {
	case "🚫":
		m.report.BlockRequested = true
		m.report.State = models.StateComplete
		return Turn{Replies: []string{replyBlocked, replyFinalAck}, Completed: m.report}
	case "⭕":
		m.report.State = models.StateComplete
		return Turn{Replies: []string{replyFinalAck}, Completed: m.report}
	}
	return Turn{}
}
