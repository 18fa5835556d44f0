package ui

import "time"

// Config holds the runtime settings for the program. Fields with env
// tags can be overridden from the environment.
type Config struct {
	// Endpoint is the speech synthesis service URL.
	Endpoint string `env:"SPEEDQUIZ_ENDPOINT"`
	// BGMPath points to an MP3 file looped as background music.
	BGMPath string `env:"SPEEDQUIZ_BGM"`
	// MockAudio swaps the speaker output for a silent device.
	MockAudio bool `env:"SPEEDQUIZ_MOCK_AUDIO"`
	// Debug enables verbose logging and the clock adjustment keys.
	Debug bool `env:"SPEEDQUIZ_DEBUG"`
	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `env:"SPEEDQUIZ_LOGFILE"`

	// SessionSeconds is the total game length.
	SessionSeconds int
	// Lookahead is how many upcoming questions to keep synthesized.
	Lookahead int
	// Pacing is the delay between background synthesis requests.
	Pacing time.Duration
}
