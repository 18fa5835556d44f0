package game

import "time"

// Banner step intervals.
const (
	bannerTypeInterval   = 100 * time.Millisecond
	bannerHoldInterval   = time.Second
	bannerDeleteInterval = 50 * time.Millisecond
)

type bannerState int

const (
	bannerIdle bannerState = iota
	bannerTyping
	bannerHolding
	bannerDeleting
)

// Banner animates a short message one character at a time: type it in,
// hold it, delete it, then fire a completion callback once.
type Banner struct {
	runes  []rune
	shown  int
	state  bannerState
	onDone func()
}

// Start begins animating text. onDone runs exactly once, after the
// final character is deleted. Empty text completes immediately.
func (b *Banner) Start(text string, onDone func()) {
	b.runes = []rune(text)
	b.shown = 0
	b.onDone = onDone
	if len(b.runes) == 0 {
		b.state = bannerIdle
		b.finish()
		return
	}
	b.state = bannerTyping
}

// Active reports whether an animation is in progress.
func (b *Banner) Active() bool {
	return b.state != bannerIdle
}

// Text returns the currently visible portion of the message.
func (b *Banner) Text() string {
	return string(b.runes[:b.shown])
}

// StepInterval returns how long to wait before the next Step call.
func (b *Banner) StepInterval() time.Duration {
	switch b.state {
	case bannerTyping:
		return bannerTypeInterval
	case bannerHolding:
		return bannerHoldInterval
	case bannerDeleting:
		return bannerDeleteInterval
	default:
		return 0
	}
}

// Step advances the animation by one tick.
func (b *Banner) Step() {
	switch b.state {
	case bannerTyping:
		b.shown++
		if b.shown >= len(b.runes) {
			b.state = bannerHolding
		}
	case bannerHolding:
		b.state = bannerDeleting
	case bannerDeleting:
		b.shown--
		if b.shown <= 0 {
			b.shown = 0
			b.state = bannerIdle
			b.finish()
		}
	}
}

// Cancel stops the animation without running the completion callback.
func (b *Banner) Cancel() {
	b.state = bannerIdle
	b.shown = 0
	b.onDone = nil
}

func (b *Banner) finish() {
	done := b.onDone
	b.onDone = nil
	if done != nil {
		done()
	}
}
