package synth

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/speedquiz/internal/audio"
)

// Speaker turns text into playable PCM. Each request picks a fresh
// random voice and decodes the service's MP3 response.
type Speaker struct {
	client   *Client
	selector *Selector
}

// NewSpeaker combines a synthesis client with a voice selector.
func NewSpeaker(client *Client, selector *Selector) *Speaker {
	return &Speaker{client: client, selector: selector}
}

// Synthesize generates decoded audio for text.
func (s *Speaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	voice := s.selector.Pick()
	clip, err := s.client.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	pcm, rate, err := audio.DecodeMP3(clip)
	if err != nil {
		return nil, fmt.Errorf("voice %s: %w", voice.ID, err)
	}
	log.Debug("speech decoded", "voice", voice.Name, "rate", rate, "bytes", len(pcm))
	return pcm, nil
}
