// Package ui renders the quiz with Bubble Tea.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/speedquiz/internal/game"
)

// tickMsg drives the once-per-second game clocks.
type tickMsg time.Time

// bannerStepMsg drives the transition banner animation.
type bannerStepMsg struct{}

// Model is the Bubble Tea model for the whole game.
type Model struct {
	session  *game.Session
	pipeline *AudioPipeline

	nameInput   textinput.Model
	answerInput textinput.Model

	width  int
	height int

	debug       bool
	startErr    string
	bannerAlive bool
}

// NewModel builds the UI around a session. pipeline may be nil when
// running without audio.
func NewModel(session *game.Session, pipeline *AudioPipeline, debug bool) Model {
	name := textinput.New()
	name.Placeholder = "이름을 입력하세요"
	name.CharLimit = 20
	name.Width = 24
	name.Focus()

	answer := textinput.New()
	answer.Placeholder = "정답을 입력하세요"
	answer.CharLimit = 40
	answer.Width = 32

	return Model{
		session:     session,
		pipeline:    pipeline,
		nameInput:   name,
		answerInput: answer,
		debug:       debug,
	}
}

// Init arms idle prefetch and starts the clock.
func (m Model) Init() tea.Cmd {
	m.session.ArmPrefetch()
	return tea.Batch(textinput.Blink, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func bannerCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bannerStepMsg{}
	})
}

// Update routes messages by game phase.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.session.TickSecond()
		cmds := []tea.Cmd{tickCmd()}
		if cmd := m.armBanner(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.session.Phase() != game.PhasePlaying {
			m.answerInput.Reset()
		}
		return m, tea.Batch(cmds...)

	case bannerStepMsg:
		if !m.session.InTransition() {
			m.bannerAlive = false
			return m, nil
		}
		m.session.StepBanner()
		if m.session.InTransition() {
			return m, bannerCmd(m.session.BannerInterval())
		}
		m.bannerAlive = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}

	switch m.session.Phase() {
	case game.PhaseStart:
		return m.handleStartKey(msg)
	case game.PhasePlaying:
		return m.handlePlayingKey(msg)
	case game.PhaseGameOver:
		return m.handleGameOverKey(msg)
	case game.PhaseRanking:
		return m.handleRankingKey(msg)
	}
	return m, nil
}

func (m Model) handleStartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if err := m.session.StartGame(m.nameInput.Value()); err != nil {
			m.startErr = "이름을 입력해 주세요"
			return m, nil
		}
		m.startErr = ""
		m.answerInput.Reset()
		m.answerInput.Focus()
		m.nameInput.Blur()
		log.Debug("ui entered play", "player", m.session.PlayerName())
		return m, textinput.Blink
	case tea.KeyEsc:
		return m, m.quit()
	case tea.KeyCtrlR:
		m.session.ShowRanking()
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.session.SubmitAnswer(m.answerInput.Value())
		m.answerInput.Reset()
		return m, m.armBanner()
	case tea.KeyRight:
		m.session.Skip()
		m.answerInput.Reset()
		return m, m.armBanner()
	case tea.KeyEsc:
		m.session.GoToStart()
		m.resetToStart()
		return m, textinput.Blink
	case tea.KeyUp:
		if m.debug {
			m.session.AdjustSessionClock(game.SessionClockStep)
		}
		return m, nil
	case tea.KeyDown:
		if m.debug {
			m.session.AdjustSessionClock(-game.SessionClockStep)
		}
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m Model) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.session.GoToStart()
		m.resetToStart()
		return m, textinput.Blink
	case tea.KeyCtrlR:
		m.session.ShowRanking()
		return m, nil
	}
	return m, nil
}

func (m Model) handleRankingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.session.GoToStart()
		m.resetToStart()
		return m, textinput.Blink
	}
	return m, nil
}

// quit releases the audio device before exiting.
func (m Model) quit() tea.Cmd {
	if m.pipeline != nil {
		if err := m.pipeline.Close(); err != nil {
			log.Debug("pipeline close", "error", err)
		}
	}
	return tea.Quit
}

// armBanner begins driving banner steps when a transition just started
// and no step message is already scheduled.
func (m *Model) armBanner() tea.Cmd {
	if !m.session.InTransition() || m.bannerAlive {
		return nil
	}
	m.bannerAlive = true
	return bannerCmd(m.session.BannerInterval())
}

func (m *Model) resetToStart() {
	m.nameInput.Reset()
	m.nameInput.Focus()
	m.answerInput.Reset()
	m.answerInput.Blur()
	m.startErr = ""
	m.bannerAlive = false
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.session.Phase() {
	case game.PhaseStart:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case game.PhasePlaying:
		if !m.session.InTransition() {
			m.answerInput, cmd = m.answerInput.Update(msg)
		}
	}
	return m, cmd
}
