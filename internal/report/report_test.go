package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modbot/backend/internal/models"
)

const testLink = "https://discord.com/channels/123/456/789"

// fakeFetcher resolves every link to a fixed target message.
type fakeFetcher struct {
	target *models.TargetMessage
	err    error
}

func (f *fakeFetcher) FetchMessage(channelID, messageID string) (*models.TargetMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.target, nil
}

func testTarget() *models.TargetMessage {
	return &models.TargetMessage{
		GuildID:    "123",
		ChannelID:  "456",
		MessageID:  "789",
		AuthorID:   "author_1",
		AuthorName: "badactor",
		Content:    "the moon landing was staged",
	}
}

// startedMachine walks a fresh machine through the start keyword and link
// exchange so it sits at the category question.
func startedMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine("reporter_1", &fakeFetcher{target: testTarget()})

	turn := m.Handle(MessageInput{Content: "report"})
	require.Len(t, turn.Replies, 2)

	turn = m.Handle(MessageInput{Content: testLink})
	require.Equal(t, models.StateCollectingReason, m.Report().State)
	require.NotNil(t, turn.Prompt)
	return m
}

func TestMachineHarassmentPath(t *testing.T) {
	m := startedMachine(t)

	// Category: Harassment/Bullying
	turn := m.Handle(ReactionInput{Emoji: "1️⃣"})
	assert.Equal(t, models.StateCollectingSubreason, m.Report().State)
	require.NotNil(t, turn.Prompt)

	// Subcategory: Threat
	turn = m.Handle(ReactionInput{Emoji: "🇨"})
	assert.Equal(t, "Threat", m.Report().Subcategory)
	assert.Equal(t, models.StateCollectingDetails, m.Report().State)
	require.NotNil(t, turn.Prompt)

	// No extra details
	turn = m.Handle(ReactionInput{Emoji: "❌"})
	assert.Equal(t, models.StateAwaitingBlockDecision, m.Report().State)
	require.NotNil(t, turn.Prompt)

	// Block the user
	turn = m.Handle(ReactionInput{Emoji: "🚫"})
	require.NotNil(t, turn.Completed)
	assert.Equal(t, models.StateComplete, turn.Completed.State)
	assert.True(t, turn.Completed.BlockRequested)
	assert.Equal(t, CategoryHarassment, turn.Completed.PrimaryCategory)
	assert.Equal(t, DisinfoNotApplicable, turn.Completed.DisinfoType)
	assert.Equal(t, "The user has been blocked.", turn.Replies[0])
}

func TestMachineFalseInfoPathWithDetails(t *testing.T) {
	m := startedMachine(t)

	m.Handle(ReactionInput{Emoji: "2️⃣"})
	assert.Equal(t, CategoryFalseInfo, m.Report().PrimaryCategory)

	m.Handle(ReactionInput{Emoji: "🇬"})
	assert.Equal(t, "Elections", m.Report().Subcategory)
	assert.Equal(t, models.StateCollectingDisinfoType, m.Report().State)

	// Disinformation intent question is asked only on this branch.
	turn := m.Handle(ReactionInput{Emoji: "⬅️"})
	assert.Contains(t, m.Report().DisinfoType, "Purposefully falsified")
	require.NotNil(t, turn.Prompt)

	// Provide free-text details.
	turn = m.Handle(ReactionInput{Emoji: "✅"})
	require.Len(t, turn.Replies, 1)
	turn = m.Handle(MessageInput{Content: "it spread during the election"})
	assert.Equal(t, "it spread during the election", m.Report().HarmDetails)
	assert.Contains(t, turn.Replies[0], "We have received the following response")

	turn = m.Handle(ReactionInput{Emoji: "⭕"})
	require.NotNil(t, turn.Completed)
	assert.False(t, turn.Completed.BlockRequested)
}

func TestMachineCancelAtAnyTurn(t *testing.T) {
	m := startedMachine(t)
	m.Handle(ReactionInput{Emoji: "4️⃣"})

	turn := m.Handle(MessageInput{Content: "cancel"})

	assert.Equal(t, models.StateCancelled, m.Report().State)
	assert.Equal(t, []string{"Report cancelled."}, turn.Replies)

	// Terminal machines ignore further input.
	turn = m.Handle(ReactionInput{Emoji: "🇴"})
	assert.Empty(t, turn.Replies)
	assert.Nil(t, turn.Prompt)
}

func TestMachineIgnoresUnexpectedInput(t *testing.T) {
	m := startedMachine(t)

	// A message during a reaction stage is a no-op.
	turn := m.Handle(MessageInput{Content: "hello?"})
	assert.Empty(t, turn.Replies)
	assert.Equal(t, models.StateCollectingReason, m.Report().State)

	// An emoji outside the current option set is a no-op.
	turn = m.Handle(ReactionInput{Emoji: "🇿"})
	assert.Empty(t, turn.Replies)
	assert.Equal(t, models.StateCollectingReason, m.Report().State)

	// A subcategory letter from a different category's set is a no-op too.
	m.Handle(ReactionInput{Emoji: "3️⃣"})
	turn = m.Handle(ReactionInput{Emoji: "🇦"})
	assert.Empty(t, m.Report().Subcategory)
}

func TestMachineBadLinkAndGoneMessage(t *testing.T) {
	m := NewMachine("reporter_1", &fakeFetcher{err: errors.New("not found")})
	m.Handle(MessageInput{Content: "report"})

	turn := m.Handle(MessageInput{Content: "not a link"})
	assert.Contains(t, turn.Replies[0], "couldn't read that link")
	assert.Equal(t, models.StateAwaitingStart, m.Report().State)

	turn = m.Handle(MessageInput{Content: testLink})
	assert.Contains(t, turn.Replies[0], "deleted or never existed")
	assert.Equal(t, models.StateAwaitingStart, m.Report().State)
}

func TestFormatForwardRoundTrip(t *testing.T) {
	m := startedMachine(t)
	m.Handle(ReactionInput{Emoji: "2️⃣"})
	m.Handle(ReactionInput{Emoji: "🇭"})
	m.Handle(ReactionInput{Emoji: "➡️"})
	m.Handle(ReactionInput{Emoji: "✅"})
	m.Handle(MessageInput{Content: "some details"})
	turn := m.Handle(ReactionInput{Emoji: "⭕"})
	require.NotNil(t, turn.Completed)

	text := FormatForward(turn.Completed)

	assert.Contains(t, text, "Original author: badactor")
	assert.Contains(t, text, `Original content: "the moon landing was staged"`)
	assert.Contains(t, text, "UserID of Reporter: reporter_1")
	assert.Contains(t, text, `Primary Abuse Type: "False/Misleading Information"`)
	assert.Contains(t, text, `Category of Abuse Type: "Politics"`)
	assert.Contains(t, text, `Disinformation Type: "False information due to suspected hacking, or unintentional false information"`)
	assert.Contains(t, text, `More Details from User: "some details"`)
}

func TestFormatForwardDisinfoNotApplicable(t *testing.T) {
	m := startedMachine(t)
	m.Handle(ReactionInput{Emoji: "4️⃣"})
	m.Handle(ReactionInput{Emoji: "🇵"})
	m.Handle(ReactionInput{Emoji: "❌"})
	turn := m.Handle(ReactionInput{Emoji: "⭕"})
	require.NotNil(t, turn.Completed)

	assert.Contains(t, FormatForward(turn.Completed), `Disinformation Type: "N/A"`)
}

func TestParseMessageLink(t *testing.T) {
	channelID, messageID, ok := ParseMessageLink(testLink)
	assert.True(t, ok)
	assert.Equal(t, "456", channelID)
	assert.Equal(t, "789", messageID)

	_, _, ok = ParseMessageLink("https://example.com/channels/1/2/3")
	assert.False(t, ok)
}
