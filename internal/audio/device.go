// Package audio owns narration and background-music playback. Exactly one
// narration player and one music player exist at a time; acquiring a slot
// releases the previous occupant first.
package audio

import "io"

// Audio output format constants. The synthesis service and the bundled BGM
// track both decode to 16-bit little-endian PCM at this rate.
const (
	// SampleRate is the playback sample rate in Hz.
	SampleRate = 44100
	// Channels is the number of playback channels (stereo).
	Channels = 2
	// BytesPerSample is bytes per sample frame component (16-bit).
	BytesPerSample = 2
)

// Device abstracts the audio output so the controller can run against real
// hardware (oto) in production and an in-memory fake in tests.
type Device interface {
	// NewPlayer creates a player that consumes PCM from r. The player does
	// not start until Play is called.
	NewPlayer(r io.Reader) Player

	// SampleRate returns the device sample rate in Hz.
	SampleRate() int

	// Close releases the device.
	Close() error
}

// Player is a single playback stream.
type Player interface {
	// Play starts or resumes playback. Non-blocking.
	Play()

	// Pause pauses playback.
	Pause()

	// IsPlaying reports whether the stream is currently playing.
	IsPlaying() bool

	// SetVolume sets the playback gain (0.0 to 1.0).
	SetVolume(volume float64)

	// Volume returns the current gain.
	Volume() float64

	// Close stops the stream and releases its resources.
	Close() error
}
