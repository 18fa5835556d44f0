package audio

import (
	"bytes"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	// RestVolume is the music gain while no narration is speaking.
	RestVolume = 0.5
	// DuckVolume is the music gain while narration overlaps it.
	DuckVolume = 0.2
)

// Controller owns the two playback slots: one narration voice line and
// one looping music track. Starting a new narration always stops and
// releases the previous one first, so at most one voice line is audible.
type Controller struct {
	mu        sync.Mutex
	device    Device
	narration Player
	music     Player
	silence   Player
	unlocked  bool
}

// NewController wraps an audio device with slot management.
func NewController(device Device) *Controller {
	return &Controller{device: device}
}

// SilentUnlock plays a short run of silence once. Some audio backends
// refuse to emit sound until playback has been started from a direct
// user action, so this is called from the start keypress handler.
func (c *Controller) SilentUnlock() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unlocked {
		return
	}
	c.unlocked = true

	// 10ms of stereo int16 silence. The player is retained so Close
	// can release its handle.
	frames := SampleRate / 100
	silence := make([]byte, frames*Channels*BytesPerSample)
	p := c.device.NewPlayer(bytes.NewReader(silence))
	p.Play()
	c.silence = p
	log.Debug("audio output unlocked")
}

// PlayNarration stops any current voice line and plays the given PCM.
func (c *Controller) PlayNarration(pcm []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopNarrationLocked()
	if len(pcm) == 0 {
		return
	}
	p := c.device.NewPlayer(bytes.NewReader(pcm))
	p.Play()
	c.narration = p
	log.Debug("narration started", "bytes", len(pcm))
}

// StopNarration halts and releases the current voice line, if any.
func (c *Controller) StopNarration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopNarrationLocked()
}

func (c *Controller) stopNarrationLocked() {
	if c.narration == nil {
		return
	}
	c.narration.Pause()
	if err := c.narration.Close(); err != nil {
		log.Debug("narration close", "error", err)
	}
	c.narration = nil
}

// NarrationPlaying reports whether a voice line is currently audible.
func (c *Controller) NarrationPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.narration != nil && c.narration.IsPlaying()
}

// StartMusic begins looping the given PCM at rest volume. A previous
// track is stopped first. Empty input stops music entirely.
func (c *Controller) StartMusic(pcm []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopMusicLocked()
	if len(pcm) == 0 {
		return
	}
	p := c.device.NewPlayer(newLoopReader(pcm))
	p.SetVolume(RestVolume)
	p.Play()
	c.music = p
	log.Debug("music started", "bytes", len(pcm))
}

// StopMusic halts and releases the music track.
func (c *Controller) StopMusic() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopMusicLocked()
}

func (c *Controller) stopMusicLocked() {
	if c.music == nil {
		return
	}
	c.music.Pause()
	if err := c.music.Close(); err != nil {
		log.Debug("music close", "error", err)
	}
	c.music = nil
}

// MusicPlaying reports whether a music track is currently running.
func (c *Controller) MusicPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.music != nil && c.music.IsPlaying()
}

// DuckMusic lowers the music under active narration.
func (c *Controller) DuckMusic() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.music != nil {
		c.music.SetVolume(DuckVolume)
	}
}

// RestoreMusic returns the music to rest volume.
func (c *Controller) RestoreMusic() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.music != nil {
		c.music.SetVolume(RestVolume)
	}
}

// MusicVolume returns the current music gain, or zero when stopped.
func (c *Controller) MusicVolume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.music == nil {
		return 0
	}
	return c.music.Volume()
}

// Close releases every held player and the underlying device.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopNarrationLocked()
	c.stopMusicLocked()
	if c.silence != nil {
		if err := c.silence.Close(); err != nil {
			log.Debug("silence close", "error", err)
		}
		c.silence = nil
	}
	return c.device.Close()
}
