package ui

import (
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/speedquiz/internal/audio"
	"github.com/dgnsrekt/speedquiz/internal/game"
	"github.com/dgnsrekt/speedquiz/internal/prefetch"
	"github.com/dgnsrekt/speedquiz/internal/quiz"
	"github.com/dgnsrekt/speedquiz/internal/synth"
)

// NewProgram assembles the audio pipeline and game session and wraps
// them in a Bubble Tea program.
func NewProgram(cfg Config) (*tea.Program, error) {
	device, err := openDevice(cfg)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	client := synth.NewClient(cfg.Endpoint)
	speaker := synth.NewSpeaker(client, synth.NewSelector(rng))

	buffer := prefetch.NewBuffer()
	filler := prefetch.NewFiller(buffer, speaker)
	if cfg.Pacing > 0 {
		filler.SetPacing(cfg.Pacing)
	}

	controller := audio.NewController(device)

	bgm, err := loadBGM(cfg.BGMPath)
	if err != nil {
		log.Warn("background music unavailable", "path", cfg.BGMPath, "error", err)
	}
	pipeline := NewAudioPipeline(filler, buffer, controller, bgm)

	gameCfg := game.DefaultConfig()
	if cfg.SessionSeconds > 0 {
		gameCfg.SessionSeconds = cfg.SessionSeconds
	}
	if cfg.Lookahead > 0 {
		gameCfg.Lookahead = cfg.Lookahead
	}
	session := game.NewSession(gameCfg, quiz.DefaultSet(), quiz.NewBoard(), pipeline, rng)

	model := NewModel(session, pipeline, cfg.Debug)
	return tea.NewProgram(model, tea.WithAltScreen()), nil
}

func openDevice(cfg Config) (audio.Device, error) {
	if cfg.MockAudio {
		return audio.NewMockDevice(), nil
	}
	return audio.NewOtoDevice()
}

// loadBGM reads and decodes the configured music track. An empty path
// means no music.
func loadBGM(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pcm, _, err := audio.DecodeMP3(data)
	if err != nil {
		return nil, err
	}
	return pcm, nil
}
