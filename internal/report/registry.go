package report

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"modbot/backend/internal/models"
)

// Registry owns all in-flight report sessions, keyed by reporting user. It
// is the single place that creates, looks up, and removes sessions, and it
// enforces that each user has at most one active report: a second start
// while one is in flight is routed into the existing session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Machine
	fetch    MessageFetcher
	logger   *slog.Logger
}

// NewRegistry creates an empty session registry.
func NewRegistry(fetch MessageFetcher, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Machine),
		fetch:    fetch,
		logger:   logger,
	}
}

// Handle routes one inbound DM event into the reporter's session. Events for
// users with no session that are not a start keyword are ignored (ok=false).
// Terminal turns destroy the session, so every report starts from a zero
// field set.
func (r *Registry) Handle(reporterID string, in Input) (Turn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.sessions[reporterID]
	if !exists {
		msg, isMsg := in.(MessageInput)
		if !isMsg || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(msg.Content)), StartKeyword) {
			return Turn{}, false
		}
		m = NewMachine(reporterID, r.fetch)
		r.sessions[reporterID] = m
		r.logger.Info("report session opened", "reporter", reporterID, "report", m.Report().ID)
	}

	turn := m.Handle(in)
	if m.Report().State.Terminal() {
		delete(r.sessions, reporterID)
		r.logger.Info("report session closed",
			"reporter", reporterID,
			"report", m.Report().ID,
			"state", string(m.Report().State))
	}
	return turn, true
}

// Seed opens a session whose target message is already known. If the user
// already has an active report the existing session wins and the hand-off is
// dropped.
func (r *Registry) Seed(reporterID string, target *models.TargetMessage) (Turn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[reporterID]; exists {
		return Turn{}, false
	}
	m := NewSeededMachine(reporterID, target)
	r.sessions[reporterID] = m
	r.logger.Info("report session seeded", "reporter", reporterID, "report", m.Report().ID)
	return Turn{
		Replies: []string{"You are reporting this message:", target.AuthorName + ": \"" + target.Content + "\""},
		Prompt:  categoryPrompt,
	}, true
}

// Active returns the number of in-flight sessions.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle longer than maxIdle and returns how many were
// dropped. A user who never replies would otherwise hold a session forever.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	dropped := 0
	for id, m := range r.sessions {
		if m.IdleSince().Before(cutoff) {
			delete(r.sessions, id)
			dropped++
			r.logger.Info("report session expired", "reporter", id, "report", m.Report().ID)
		}
	}
	return dropped
}
