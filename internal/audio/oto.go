//go:build !nocgo
// +build !nocgo

package audio

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// otoDevice is the production Device backed by an oto context. The oto
// context is process-wide; creating it once and handing out players is the
// only supported usage.
type otoDevice struct {
	ctx *oto.Context
}

// NewOtoDevice opens the system audio device and waits until it is ready.
func NewOtoDevice() (Device, error) {
	options := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	switch runtime.GOOS {
	case "darwin":
		options.BufferSize = 100 * time.Millisecond
	default:
		options.BufferSize = 50 * time.Millisecond
	}

	ctx, ready, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	log.Debug("audio device ready",
		"sampleRate", options.SampleRate,
		"channels", options.ChannelCount,
		"bufferSize", options.BufferSize)

	return &otoDevice{ctx: ctx}, nil
}

func (d *otoDevice) NewPlayer(r io.Reader) Player {
	return d.ctx.NewPlayer(r)
}

func (d *otoDevice) SampleRate() int {
	return SampleRate
}

func (d *otoDevice) Close() error {
	// oto contexts cannot be closed; suspending stops the output thread.
	return d.ctx.Suspend()
}
