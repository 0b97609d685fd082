package feed

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modbot/backend/internal/models"
)

func runningHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go h.Run()
	return h
}

func receive(t *testing.T, sub *Subscriber) models.ModEvent {
	t.Helper()
	select {
	case ev := <-sub.Send:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return models.ModEvent{}
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := runningHub(t)
	a := h.Subscribe()
	b := h.Subscribe()

	h.Publish(models.ModEvent{Type: models.EventMessageFlagged, GuildID: "g1"})

	assert.Equal(t, "g1", receive(t, a).GuildID)
	assert.Equal(t, "g1", receive(t, b).GuildID)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := runningHub(t)
	sub := h.Subscribe()

	h.Unsubscribe(sub)

	select {
	case _, ok := <-sub.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	h := runningHub(t)
	slow := h.Subscribe()
	fast := h.Subscribe()

	// Drain the fast subscriber continuously so only slow falls behind.
	drained := make(chan int, 1)
	go func() {
		n := 0
		for range fast.Send {
			n++
		}
		drained <- n
	}()

	// Overflow the slow subscriber's buffer without draining it.
	for i := 0; i < cap(slow.Send)+5; i++ {
		h.Publish(models.ModEvent{Type: models.EventDisposition})
	}

	// The loop drops the slow subscriber and closes its channel.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-slow.Send:
			if !ok {
				h.Unsubscribe(fast)
				require.Greater(t, <-drained, 0)
				return
			}
		case <-deadline:
			t.Fatal("slow subscriber was not dropped")
		}
	}
}
