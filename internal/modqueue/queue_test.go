package modqueue

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modbot/backend/internal/config"
	"modbot/backend/internal/models"
)

// stubActions records platform side effects instead of performing them.
type stubActions struct {
	reacted []string
	deleted []string
}

func (s *stubActions) React(m *models.QueuedMessage, emoji string) error {
	s.reacted = append(s.reacted, m.MessageID+":"+emoji)
	return nil
}

func (s *stubActions) Delete(m *models.QueuedMessage) error {
	s.deleted = append(s.deleted, m.MessageID)
	return nil
}

// stubFeed collects published events.
type stubFeed struct {
	events []models.ModEvent
}

func (s *stubFeed) Publish(ev models.ModEvent) {
	s.events = append(s.events, ev)
}

func (s *stubFeed) byType(typ string) []models.ModEvent {
	var out []models.ModEvent
	for _, ev := range s.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func newTestService(threshold int) (*Service, *stubActions, *stubFeed) {
	actions := &stubActions{}
	feed := &stubFeed{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewLedger(threshold), actions, feed, logger), actions, feed
}

func queued(guildID, messageID, authorID string) *models.QueuedMessage {
	return &models.QueuedMessage{
		GuildID:    guildID,
		ChannelID:  "chan_1",
		MessageID:  messageID,
		AuthorID:   authorID,
		AuthorName: "someone",
		Content:    "suspicious claim",
	}
}

func TestEnqueuePublishesAndPrompts(t *testing.T) {
	svc, _, feed := newTestService(50)

	prompt := svc.Enqueue(queued("g1", "m1", "a1"))

	require.NotNil(t, prompt)
	assert.Contains(t, prompt.Emojis(), "🔴")
	assert.Equal(t, 1, svc.Depth())
	require.Len(t, feed.byType(models.EventMessageFlagged), 1)
}

func TestReactionsOnEmptyQueueAreNoOps(t *testing.T) {
	svc, actions, feed := newTestService(50)

	res := svc.HandleReaction("g1", "🔴")

	assert.Empty(t, res.Replies)
	assert.Nil(t, res.Prompt)
	assert.Empty(t, actions.reacted)
	assert.Empty(t, feed.events)
}

func TestDispositionsAreFIFO(t *testing.T) {
	svc, _, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))
	svc.Enqueue(queued("g1", "m2", "a2"))

	// Disposing the head resolves m1 and leaves m2 at the front.
	res := svc.HandleReaction("g1", "🟢")
	assert.Equal(t, []string{ackSpam}, res.Replies)

	snapshot := svc.QueueSnapshot("g1")
	require.Len(t, snapshot, 1)
	assert.Equal(t, "m2", snapshot[0].MessageID)
}

func TestGuildQueuesAreIndependent(t *testing.T) {
	svc, _, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))
	svc.Enqueue(queued("g2", "m2", "a2"))

	svc.HandleReaction("g1", "🔴")

	assert.Empty(t, svc.QueueSnapshot("g1"))
	require.Len(t, svc.QueueSnapshot("g2"), 1)
}

func TestNonFalseCategoriesResolveImmediately(t *testing.T) {
	cases := []struct {
		emoji string
		reply string
	}{
		{"🔴", ackHarassment},
		{"🟡", ackViolence},
		{"🟢", ackSpam},
		{"🔵", ackOther},
	}
	for _, tc := range cases {
		svc, actions, _ := newTestService(50)
		svc.Enqueue(queued("g1", "m1", "a1"))

		res := svc.HandleReaction("g1", tc.emoji)

		assert.Equal(t, []string{tc.reply}, res.Replies)
		assert.Equal(t, []string{"m1:" + tc.emoji}, actions.reacted)
		assert.Equal(t, 0, svc.Depth())
		// No points for non-false categories.
		assert.Equal(t, 0, svc.Ledger().Total("a1"))
	}
}

func TestFalseInfoNoConfirmationResolvesWithoutPoints(t *testing.T) {
	svc, _, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))

	svc.HandleReaction("g1", "🟠")
	res := svc.HandleReaction("g1", "❌")

	assert.Equal(t, []string{ackNoFalse}, res.Replies)
	assert.Equal(t, 0, svc.Depth())
	assert.Equal(t, 0, svc.Ledger().Total("a1"))
}

func TestSatireResolvesWithoutPoints(t *testing.T) {
	svc, _, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))

	svc.HandleReaction("g1", "🟠")
	svc.HandleReaction("g1", "✅")
	res := svc.HandleReaction("g1", "➡️")

	assert.Equal(t, []string{ackDeferred}, res.Replies)
	assert.Equal(t, 0, svc.Ledger().Total("a1"))
}

func TestSeverityImmediateHarmDeletesAndScores(t *testing.T) {
	svc, actions, feed := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))

	svc.HandleReaction("g1", "🟠")
	svc.HandleReaction("g1", "✅")
	svc.HandleReaction("g1", "⬅️")
	res := svc.HandleReaction("g1", "1️⃣")

	assert.Equal(t, []string{ackTakenDown}, res.Replies)
	assert.Equal(t, []string{"m1"}, actions.deleted)
	assert.Equal(t, config.PointsImmediateHarm, svc.Ledger().Total("a1"))
	require.Len(t, feed.byType(models.EventPointsAdded), 1)
}

func TestSeverityModerateHarmFlagsAndScores(t *testing.T) {
	svc, actions, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))

	svc.HandleReaction("g1", "🟠")
	svc.HandleReaction("g1", "✅")
	svc.HandleReaction("g1", "⬅️")
	res := svc.HandleReaction("g1", "2️⃣")

	assert.Equal(t, []string{ackFlagged}, res.Replies)
	assert.Contains(t, actions.reacted, "m1:"+config.FlagEmoji)
	assert.Empty(t, actions.deleted)
	assert.Equal(t, config.PointsModerateHarm, svc.Ledger().Total("a1"))
}

func TestSeverityLowHarmOnlyScores(t *testing.T) {
	svc, actions, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))

	svc.HandleReaction("g1", "🟠")
	svc.HandleReaction("g1", "✅")
	svc.HandleReaction("g1", "⬅️")
	res := svc.HandleReaction("g1", "3️⃣")

	assert.Equal(t, []string{ackDeferred}, res.Replies)
	assert.Empty(t, actions.deleted)
	assert.Equal(t, config.PointsLowHarm, svc.Ledger().Total("a1"))
}

func TestBanNoticeAppendedOnThresholdCross(t *testing.T) {
	svc, _, feed := newTestService(10)
	svc.Ledger().Add("a1", 6)
	svc.Enqueue(queued("g1", "m1", "a1"))

	svc.HandleReaction("g1", "🟠")
	svc.HandleReaction("g1", "✅")
	svc.HandleReaction("g1", "⬅️")
	res := svc.HandleReaction("g1", "1️⃣")

	// 6 + 8 = 14 > 10: the disposition ack and the ban notice arrive together.
	require.Len(t, res.Replies, 2)
	assert.Equal(t, ackTakenDown, res.Replies[0])
	assert.Equal(t, banNotice, res.Replies[1])
	assert.True(t, svc.Ledger().IsBanned("a1"))
	require.Len(t, feed.byType(models.EventBanTriggered), 1)
}

func TestBanNoticeNotRepeatedWhileBanned(t *testing.T) {
	svc, _, _ := newTestService(10)
	svc.Ledger().Add("a1", 12)
	svc.Enqueue(queued("g1", "m1", "a1"))

	svc.HandleReaction("g1", "🟠")
	svc.HandleReaction("g1", "✅")
	svc.HandleReaction("g1", "⬅️")
	res := svc.HandleReaction("g1", "2️⃣")

	assert.Equal(t, []string{ackFlagged}, res.Replies)
}

func TestStageFiltersForeignEmoji(t *testing.T) {
	svc, _, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))

	// Severity and confirmation emoji mean nothing at the category stage.
	assert.Empty(t, svc.HandleReaction("g1", "1️⃣").Replies)
	assert.Empty(t, svc.HandleReaction("g1", "✅").Replies)
	assert.Equal(t, 1, svc.Depth())

	svc.HandleReaction("g1", "🟠")
	// Category emoji mean nothing at the confirmation stage.
	assert.Empty(t, svc.HandleReaction("g1", "🔴").Replies)
	assert.Equal(t, 1, svc.Depth())
}

func TestStageAdvancesToNextMessage(t *testing.T) {
	svc, _, _ := newTestService(50)
	svc.Enqueue(queued("g1", "m1", "a1"))
	svc.Enqueue(queued("g1", "m2", "a2"))

	svc.HandleReaction("g1", "🟠")
	svc.HandleReaction("g1", "✅")
	svc.HandleReaction("g1", "⬅️")
	svc.HandleReaction("g1", "3️⃣")

	// The next message starts back at the category question.
	res := svc.HandleReaction("g1", "🟠")
	require.NotNil(t, res.Prompt)
	assert.Contains(t, res.Prompt.Text, "false or misleading")
}
