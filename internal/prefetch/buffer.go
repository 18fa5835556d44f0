// Package prefetch keeps synthesized audio ready ahead of playback.
package prefetch

import (
	"context"
	"sync"
)

// DefaultCapacity is how many clips the buffer aims to hold at once.
const DefaultCapacity = 5

// Buffer is a keyed store of decoded audio clips with per-key
// reservation markers. A reservation claims exclusive responsibility
// for producing a clip, so concurrent fillers never synthesize the
// same question twice.
type Buffer struct {
	mu       sync.Mutex
	entries  map[int][]byte
	inflight map[int]struct{}
	waiters  map[int][]chan struct{}
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		entries:  make(map[int][]byte),
		inflight: make(map[int]struct{}),
		waiters:  make(map[int][]chan struct{}),
	}
}

// Has reports whether a clip is stored for id.
func (b *Buffer) Has(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.entries[id]
	return ok
}

// Get returns the stored clip for id, if present.
func (b *Buffer) Get(id int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	clip, ok := b.entries[id]
	return clip, ok
}

// Put stores a clip, clears any reservation for id, and wakes waiters.
func (b *Buffer) Put(id int, clip []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[id] = clip
	delete(b.inflight, id)
	b.notifyLocked(id)
}

// Remove drops the clip for id, if any.
func (b *Buffer) Remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, id)
}

// Flush drops every stored clip and reservation.
func (b *Buffer) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make(map[int][]byte)
	b.inflight = make(map[int]struct{})
	for id := range b.waiters {
		b.notifyLocked(id)
	}
}

// Len returns the number of stored clips. Reservations do not count.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// IDs returns the ids of all stored clips in unspecified order.
func (b *Buffer) IDs() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	return ids
}

// Reserve claims id for synthesis. It returns false when the clip is
// already stored or another producer holds the reservation, in which
// case the caller must not synthesize it.
func (b *Buffer) Reserve(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.entries[id]; ok {
		return false
	}
	if _, ok := b.inflight[id]; ok {
		return false
	}
	b.inflight[id] = struct{}{}
	return true
}

// Release abandons a reservation without storing a clip. Waiters are
// woken so they can re-check and claim the id themselves.
func (b *Buffer) Release(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, id)
	b.notifyLocked(id)
}

// Reserved reports whether id is currently claimed by a producer.
func (b *Buffer) Reserved(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inflight[id]
	return ok
}

// Await blocks until the clip for id is stored, its reservation is
// released without a clip, or ctx ends. The bool reports whether a
// clip was obtained.
func (b *Buffer) Await(ctx context.Context, id int) ([]byte, bool) {
	for {
		b.mu.Lock()
		if clip, ok := b.entries[id]; ok {
			b.mu.Unlock()
			return clip, true
		}
		if _, ok := b.inflight[id]; !ok {
			b.mu.Unlock()
			return nil, false
		}
		ch := make(chan struct{})
		b.waiters[id] = append(b.waiters[id], ch)
		b.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, false
		}
	}
}

func (b *Buffer) notifyLocked(id int) {
	for _, ch := range b.waiters[id] {
		close(ch)
	}
	delete(b.waiters, id)
}
