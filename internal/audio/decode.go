package audio

import (
	"bytes"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an MP3 stream into raw signed 16-bit little-endian
// stereo PCM along with the source sample rate.
func DecodeMP3(data []byte) ([]byte, int, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("decode mp3: empty input")
	}

	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decode mp3: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("decode mp3: read samples: %w", err)
	}
	if len(pcm) == 0 {
		return nil, 0, fmt.Errorf("decode mp3: no samples")
	}
	return pcm, dec.SampleRate(), nil
}

// loopReader replays a PCM buffer forever. Used for background music.
type loopReader struct {
	data []byte
	pos  int
}

func newLoopReader(data []byte) *loopReader {
	return &loopReader{data: data}
}

func (l *loopReader) Read(p []byte) (int, error) {
	if len(l.data) == 0 {
		return 0, io.EOF
	}
	total := 0
	for total < len(p) {
		n := copy(p[total:], l.data[l.pos:])
		total += n
		l.pos += n
		if l.pos >= len(l.data) {
			l.pos = 0
		}
	}
	return total, nil
}
