package prefetch

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/speedquiz/internal/quiz"
)

// DefaultPacing is the delay between consecutive background synthesis
// requests, to avoid hammering the voice service.
const DefaultPacing = 400 * time.Millisecond

// Synthesizer produces a playable audio clip for a piece of text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Filler drives a Synthesizer to keep a Buffer stocked with upcoming
// question audio. Only one ahead-fill pass runs at a time.
type Filler struct {
	buffer  *Buffer
	synth   Synthesizer
	pacing  time.Duration
	filling atomic.Bool
}

// NewFiller creates a filler with the default pacing delay.
func NewFiller(buffer *Buffer, synth Synthesizer) *Filler {
	return &Filler{buffer: buffer, synth: synth, pacing: DefaultPacing}
}

// SetPacing overrides the delay between background requests.
func (f *Filler) SetPacing(d time.Duration) {
	f.pacing = d
}

// Filling reports whether an ahead-fill pass is in progress.
func (f *Filler) Filling() bool {
	return f.filling.Load()
}

// RunAheadFill synthesizes clips for the given questions, in order,
// skipping ones already buffered or claimed. It returns false without
// doing anything when another pass is already running. The pass stops
// early when ctx ends.
func (f *Filler) RunAheadFill(ctx context.Context, questions []quiz.Question) bool {
	if !f.filling.CompareAndSwap(false, true) {
		return false
	}
	defer f.filling.Store(false)

	for i, q := range questions {
		if ctx.Err() != nil {
			return true
		}
		if !f.buffer.Reserve(q.ID) {
			continue
		}
		f.fill(ctx, q)

		if i < len(questions)-1 && f.pacing > 0 {
			select {
			case <-time.After(f.pacing):
			case <-ctx.Done():
				return true
			}
		}
	}
	return true
}

// FetchNow returns the clip for a question that is needed immediately.
// A buffered clip returns at once. Otherwise it either synthesizes the
// clip itself or, when another producer holds the reservation, waits
// for that producer's result.
func (f *Filler) FetchNow(ctx context.Context, q quiz.Question) ([]byte, error) {
	for {
		if clip, ok := f.buffer.Get(q.ID); ok {
			return clip, nil
		}
		if f.buffer.Reserve(q.ID) {
			clip, err := f.synth.Synthesize(ctx, q.Prompt)
			if err != nil {
				f.buffer.Release(q.ID)
				return nil, err
			}
			// A result that arrives after cancellation must not land
			// in a buffer that has since been flushed.
			if ctx.Err() != nil {
				f.buffer.Release(q.ID)
				return nil, ctx.Err()
			}
			f.buffer.Put(q.ID, clip)
			return clip, nil
		}
		if clip, ok := f.buffer.Await(ctx, q.ID); ok {
			return clip, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The holder released without a clip. Re-check and take over.
	}
}

func (f *Filler) fill(ctx context.Context, q quiz.Question) {
	clip, err := f.synth.Synthesize(ctx, q.Prompt)
	if err != nil {
		f.buffer.Release(q.ID)
		log.Debug("ahead fill failed", "question", q.ID, "error", err)
		return
	}
	// The pass may have been torn down while the request was in
	// flight. A late result must not repopulate a flushed buffer.
	if ctx.Err() != nil {
		f.buffer.Release(q.ID)
		return
	}
	f.buffer.Put(q.ID, clip)
	log.Debug("ahead fill stored", "question", q.ID, "bytes", len(clip))
}
