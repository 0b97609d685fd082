package modqueue

import (
	"sort"
	"sync"

	"modbot/backend/internal/models"
)

// Ledger accumulates penalty points per message author. Points only ever
// increase. Crossing the ban threshold fires once; further increments while
// banned stay silent until the author is explicitly re-armed.
type Ledger struct {
	mu        sync.Mutex
	points    map[string]int
	banned    map[string]bool
	threshold int
}

// NewLedger creates a ledger with the given ban threshold.
func NewLedger(threshold int) *Ledger {
	return &Ledger{
		points:    make(map[string]int),
		banned:    make(map[string]bool),
		threshold: threshold,
	}
}

// Add credits points to an author and reports the new total and whether this
// increment crossed the ban threshold.
func (l *Ledger) Add(authorID string, pts int) (total int, crossed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.points[authorID] += pts
	total = l.points[authorID]
	if total > l.threshold && !l.banned[authorID] {
		l.banned[authorID] = true
		crossed = true
	}
	return total, crossed
}

// Total returns the author's accumulated points.
func (l *Ledger) Total(authorID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.points[authorID]
}

// IsBanned reports whether the author has crossed the threshold and has not
// been re-armed.
func (l *Ledger) IsBanned(authorID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.banned[authorID]
}

// Rearm resets the one-shot ban trigger for an author. Points are retained,
// so the next increment crosses the threshold again and re-fires the notice.
func (l *Ledger) Rearm(authorID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.banned[authorID] {
		return false
	}
	delete(l.banned, authorID)
	return true
}

// Entries returns a stable snapshot of the ledger for the admin API.
func (l *Ledger) Entries() []models.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.LedgerEntry, 0, len(l.points))
	for id, pts := range l.points {
		out = append(out, models.LedgerEntry{AuthorID: id, Points: pts, Banned: l.banned[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AuthorID < out[j].AuthorID })
	return out
}
