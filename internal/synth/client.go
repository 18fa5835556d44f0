// Package synth talks to the remote speech-synthesis HTTP service that turns
// question prompts into narration audio.
package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Sentinel errors for callers that need to tell cancellation apart from
// failure. A cancelled request is silent; a failed one is logged and the
// game continues without narration.
var (
	// ErrCanceled reports that the request was aborted by its caller.
	ErrCanceled = errors.New("synthesis request canceled")
	// ErrEmptyText reports a request with no text to speak.
	ErrEmptyText = errors.New("empty synthesis text")
	// ErrEmptyAudio reports a 2xx response with no payload.
	ErrEmptyAudio = errors.New("synthesis returned empty audio")
)

// DefaultTimeout bounds a single synthesis request.
const DefaultTimeout = 30 * time.Second

// request is the wire format of the synthesis service.
type request struct {
	Text          string        `json:"text"`
	VoiceID       string        `json:"voice_id"`
	Style         string        `json:"style"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	PitchShift    float64 `json:"pitch_shift"`
	PitchVariance float64 `json:"pitch_variance"`
	Speed         float64 `json:"speed"`
}

// Client issues cancellable synthesis requests against a single endpoint.
// Each call costs remote compute, so callers must not repeat requests for
// text they already hold audio for.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a synthesis client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithHTTP creates a client using a caller-supplied http.Client.
func NewClientWithHTTP(endpoint string, hc *http.Client) *Client {
	return &Client{endpoint: endpoint, http: hc}
}

// Synthesize converts text to audio bytes using the given voice profile.
// Cancelling ctx aborts the in-flight network operation and yields
// ErrCanceled; every other failure yields a descriptive error and the caller
// is expected to continue without audio.
func (c *Client) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	payload := request{
		Text:    text,
		VoiceID: voice.ID,
		Style:   voice.Style,
		VoiceSettings: voiceSettings{
			PitchShift:    0,
			PitchVariance: 1,
			Speed:         voice.Speed,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	log.Debug("synthesis request",
		"voice", voice.Name,
		"style", voice.Style,
		"speed", voice.Speed,
		"textLength", len([]rune(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if isContextErr(err) {
			return nil, ErrCanceled
		}
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("synthesis service returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(errBody)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		if isContextErr(err) {
			return nil, ErrCanceled
		}
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}

	log.Debug("synthesis complete",
		"voice", voice.Name,
		"bytes", len(audio),
		"elapsed", time.Since(start))

	return audio, nil
}

// IsCanceled reports whether err comes from caller-side cancellation rather
// than a service failure. Cancellation is never logged as an error.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
