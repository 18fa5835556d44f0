package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// MockDevice implements Device without touching audio hardware. Used by
// tests and by headless/CI runs.
type MockDevice struct {
	mu      sync.Mutex
	players []*MockPlayer
	closed  bool
}

// NewMockDevice creates a silent in-memory audio device.
func NewMockDevice() *MockDevice {
	log.Debug("using mock audio device")
	return &MockDevice{}
}

// NewPlayer creates a mock player that records its state transitions.
func (d *MockDevice) NewPlayer(r io.Reader) Player {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := &MockPlayer{source: r, volume: 1.0}
	d.players = append(d.players, p)
	return p
}

// SampleRate returns the nominal device sample rate.
func (d *MockDevice) SampleRate() int {
	return SampleRate
}

// Close marks the device closed.
func (d *MockDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// PlayersCreated returns how many players this device has handed out.
func (d *MockDevice) PlayersCreated() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.players)
}

// OpenPlayers returns how many created players have not been closed.
func (d *MockDevice) OpenPlayers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	open := 0
	for _, p := range d.players {
		if !p.Closed() {
			open++
		}
	}
	return open
}

// PlayingPlayers returns how many players are currently in a playing state.
func (d *MockDevice) PlayingPlayers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	playing := 0
	for _, p := range d.players {
		if p.IsPlaying() {
			playing++
		}
	}
	return playing
}

// MockPlayer is a Player that only tracks state.
type MockPlayer struct {
	mu      sync.Mutex
	source  io.Reader
	playing bool
	closed  bool
	volume  float64
	plays   int
}

// Play marks the player as playing.
func (p *MockPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.playing = true
	p.plays++
}

// Pause marks the player as paused.
func (p *MockPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// IsPlaying reports the playing flag.
func (p *MockPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing && !p.closed
}

// SetVolume records the requested gain.
func (p *MockPlayer) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
}

// Volume returns the recorded gain.
func (p *MockPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Close stops and marks the player closed.
func (p *MockPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockPlayer) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// PlayCount returns how many times Play was called.
func (p *MockPlayer) PlayCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays
}
