package ui

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/speedquiz/internal/audio"
	"github.com/dgnsrekt/speedquiz/internal/prefetch"
	"github.com/dgnsrekt/speedquiz/internal/quiz"
	"github.com/dgnsrekt/speedquiz/internal/synth"
)

// AudioPipeline connects the game session to playback. It runs slow
// synthesis work on its own goroutines and uses a generation counter
// so that a narration request that has been superseded never reaches
// the speakers. Generation bumps and the check-then-play step both
// hold mu, so a request observed as current cannot be superseded
// between its check and the moment its audio starts.
type AudioPipeline struct {
	filler     *prefetch.Filler
	buffer     *prefetch.Buffer
	controller *audio.Controller
	bgm        []byte

	gen atomic.Int64

	mu             sync.Mutex
	root           context.Context
	cancelRoot     context.CancelFunc
	cancelPriority context.CancelFunc
}

// NewAudioPipeline wires the prefetch and playback layers together.
// bgm may be nil when no background track is configured.
func NewAudioPipeline(filler *prefetch.Filler, buffer *prefetch.Buffer, controller *audio.Controller, bgm []byte) *AudioPipeline {
	p := &AudioPipeline{
		filler:     filler,
		buffer:     buffer,
		controller: controller,
		bgm:        bgm,
	}
	p.root, p.cancelRoot = context.WithCancel(context.Background())
	return p
}

// Unlock primes audio output and starts the background track. Called
// synchronously from the keypress that starts a game.
func (p *AudioPipeline) Unlock() {
	p.controller.SilentUnlock()
	if len(p.bgm) > 0 && !p.controller.MusicPlaying() {
		p.controller.StartMusic(p.bgm)
	}
}

// PlayQuestion fetches the question's clip and narrates it, ducking
// the music for the duration of the fetch and playback. A later call
// supersedes this one; a stale result is discarded.
func (p *AudioPipeline) PlayQuestion(q quiz.Question) {
	gen := p.gen.Add(1)
	ctx := p.rearmPriority()

	go func() {
		p.mu.Lock()
		if p.gen.Load() != gen {
			p.mu.Unlock()
			return
		}
		if len(p.bgm) > 0 && !p.controller.MusicPlaying() {
			p.controller.StartMusic(p.bgm)
		}
		p.controller.DuckMusic()
		p.mu.Unlock()

		clip, err := p.filler.FetchNow(ctx, q)

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen.Load() != gen {
			return
		}
		if err != nil {
			if !synth.IsCanceled(err) && ctx.Err() == nil {
				log.Error("narration fetch failed", "question", q.ID, "error", err)
			}
			p.controller.RestoreMusic()
			return
		}
		p.controller.PlayNarration(clip)
		// Played audio will not repeat. Drop it so ahead fills can
		// use the slot for questions still to come.
		p.buffer.Remove(q.ID)
	}()
}

// StopNarration supersedes and cuts the voice line. Music keeps its
// current level; the caller decides when to restore it.
func (p *AudioPipeline) StopNarration() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen.Add(1)
	p.controller.StopNarration()
}

// DuckMusic lowers the background track.
func (p *AudioPipeline) DuckMusic() { p.controller.DuckMusic() }

// RestoreMusic raises the background track to rest volume.
func (p *AudioPipeline) RestoreMusic() { p.controller.RestoreMusic() }

// ScheduleFill starts a background pass synthesizing the given
// questions. A pass already in flight keeps running instead.
func (p *AudioPipeline) ScheduleFill(qs []quiz.Question) {
	if len(qs) == 0 {
		return
	}
	p.mu.Lock()
	ctx := p.root
	p.mu.Unlock()

	go func() {
		if p.filler.RunAheadFill(ctx, qs) {
			log.Debug("ahead fill pass finished", "requested", len(qs), "buffered", p.buffer.Len())
		}
	}()
}

// Teardown cancels all pending audio work, stops both players, and
// empties the buffer.
func (p *AudioPipeline) Teardown() {
	p.mu.Lock()
	p.gen.Add(1)
	p.cancelRoot()
	if p.cancelPriority != nil {
		p.cancelPriority()
		p.cancelPriority = nil
	}
	p.root, p.cancelRoot = context.WithCancel(context.Background())
	p.controller.StopNarration()
	p.controller.StopMusic()
	p.mu.Unlock()

	p.buffer.Flush()
}

// Close tears the pipeline down and releases the audio device.
func (p *AudioPipeline) Close() error {
	p.Teardown()
	return p.controller.Close()
}

// rearmPriority cancels the previous immediate fetch and returns a
// context for the next one, scoped under the pipeline root.
func (p *AudioPipeline) rearmPriority() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelPriority != nil {
		p.cancelPriority()
	}
	ctx, cancel := context.WithCancel(p.root)
	p.cancelPriority = cancel
	return ctx
}
