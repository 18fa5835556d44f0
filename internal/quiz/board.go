package quiz

import (
	"sort"
	"sync"
	"time"
)

// BoardLimit is the maximum number of ranking entries retained.
const BoardLimit = 10

// Entry is one recorded game result.
type Entry struct {
	Name  string
	Score int
	When  time.Time
}

// Board is the in-memory ranking list: descending by score, ties broken by
// insertion order, capped at BoardLimit. Nothing is persisted across runs.
type Board struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBoard creates an empty ranking board.
func NewBoard() *Board {
	return &Board{}
}

// Record adds a result and re-sorts the board, dropping entries past the cap.
func (b *Board) Record(name string, score int, when time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, Entry{Name: name, Score: score, When: when})
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Score > b.entries[j].Score
	})
	if len(b.entries) > BoardLimit {
		b.entries = b.entries[:BoardLimit]
	}
}

// Top returns up to n entries from the top of the board.
func (b *Board) Top(n int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]Entry, n)
	copy(out, b.entries[:n])
	return out
}

// Len returns the number of recorded entries.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
