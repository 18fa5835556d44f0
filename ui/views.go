package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dgnsrekt/speedquiz/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			MarginTop(1).
			MarginBottom(1)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")).
			MarginTop(1).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 3)
)

// View renders the current phase.
func (m Model) View() string {
	var body string
	switch m.session.Phase() {
	case game.PhaseStart:
		body = m.startView()
	case game.PhasePlaying:
		body = m.playingView()
	case game.PhaseGameOver:
		body = m.gameOverView()
	case game.PhaseRanking:
		body = m.rankingView()
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) startView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("스피드 퀴즈"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	if m.startErr != "" {
		b.WriteString(errStyle.Render(m.startErr))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter 시작 · ctrl+r 랭킹 · esc 종료"))
	return boxStyle.Render(b.String())
}

func (m Model) playingView() string {
	var b strings.Builder

	qStyle := clockStyle
	if m.session.QuestionClock() <= 5 {
		qStyle = urgentStyle
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		qStyle.Render(fmt.Sprintf("문제 %2ds", m.session.QuestionClock())),
		clockStyle.Render(fmt.Sprintf("전체 %3ds", m.session.SessionClock())),
		scoreStyle.Render(fmt.Sprintf("점수 %d", m.session.Score())),
	))

	if m.session.InTransition() {
		b.WriteString(bannerStyle.Render(m.session.BannerText()))
		b.WriteString("\n")
		return boxStyle.Render(b.String())
	}

	if q, ok := m.session.Current(); ok {
		b.WriteString(promptStyle.Render(q.Prompt))
		b.WriteString("\n")
	}
	b.WriteString(m.answerInput.View())
	b.WriteString("\n")
	if hint := m.session.Hint(); hint != "" {
		b.WriteString(hintStyle.Render("힌트: " + hint))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter 제출 · → 넘기기 · esc 처음으로"))
	return boxStyle.Render(b.String())
}

func (m Model) gameOverView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("게임 종료"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s님의 점수: %s\n\n",
		m.session.PlayerName(),
		scoreStyle.Render(fmt.Sprintf("%d", m.session.Score())),
	))
	b.WriteString(renderBoard(m.session, 5))
	b.WriteString(helpStyle.Render("enter 처음으로 · ctrl+r 전체 랭킹"))
	return boxStyle.Render(b.String())
}

func (m Model) rankingView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("랭킹"))
	b.WriteString("\n")
	b.WriteString(renderBoard(m.session, 10))
	b.WriteString(helpStyle.Render("enter 처음으로"))
	return boxStyle.Render(b.String())
}

func renderBoard(s *game.Session, n int) string {
	entries := s.Board().Top(n)
	if len(entries) == 0 {
		return hintStyle.Render("아직 기록이 없습니다") + "\n\n"
	}
	var b strings.Builder
	for i, e := range entries {
		// Hangul is double width. Pad on display width so the score
		// column lines up.
		name := runewidth.FillRight(e.Name, 20)
		b.WriteString(fmt.Sprintf("%2d. %s %5d\n", i+1, name, e.Score))
	}
	b.WriteString("\n")
	return b.String()
}
