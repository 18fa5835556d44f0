package game

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/dgnsrekt/speedquiz/internal/quiz"
)

// fakeAudio records every call the session makes into the pipeline.
type fakeAudio struct {
	mu        sync.Mutex
	unlocks   int
	played    []int
	stops     int
	restores  int
	fills     [][]int
	teardowns int
}

func (f *fakeAudio) Unlock() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlocks++
}

func (f *fakeAudio) PlayQuestion(q quiz.Question) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, q.ID)
}

func (f *fakeAudio) StopNarration() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeAudio) DuckMusic() {}

func (f *fakeAudio) RestoreMusic() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restores++
}

func (f *fakeAudio) ScheduleFill(qs []quiz.Question) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	f.fills = append(f.fills, ids)
}

func (f *fakeAudio) Teardown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teardowns++
}

func testSet() quiz.Set {
	return quiz.Set{
		{ID: 1, Answer: "로고", Prompt: "첫 번째 문제"},
		{ID: 2, Answer: "브랜드", Prompt: "두 번째 문제"},
		{ID: 3, Answer: "소비자", Prompt: "세 번째 문제"},
		{ID: 4, Answer: "광고", Prompt: "네 번째 문제"},
	}
}

func newTestSession(t *testing.T) (*Session, *fakeAudio) {
	t.Helper()
	audio := &fakeAudio{}
	s := NewSession(DefaultConfig(), testSet(), quiz.NewBoard(), audio, rand.New(rand.NewSource(1)))
	return s, audio
}

// finishTransition drives the banner until the session advances.
func finishTransition(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; s.InTransition(); i++ {
		if i > 100 {
			t.Fatal("banner never finished")
		}
		s.StepBanner()
	}
}

func TestStartGameRequiresName(t *testing.T) {
	s, audio := newTestSession(t)

	for _, name := range []string{"", "   "} {
		if err := s.StartGame(name); !errors.Is(err, ErrEmptyName) {
			t.Errorf("StartGame(%q) error = %v, want ErrEmptyName", name, err)
		}
	}
	if s.Phase() != PhaseStart {
		t.Errorf("Phase() = %s after rejected start", s.Phase())
	}
	if audio.unlocks != 0 {
		t.Error("rejected start touched the audio pipeline")
	}
}

func TestStartGame(t *testing.T) {
	s, audio := newTestSession(t)

	if err := s.StartGame("철수"); err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}

	if s.Phase() != PhasePlaying {
		t.Errorf("Phase() = %s, want playing", s.Phase())
	}
	if s.QuestionClock() != DefaultQuestionSeconds {
		t.Errorf("QuestionClock() = %d, want %d", s.QuestionClock(), DefaultQuestionSeconds)
	}
	if s.SessionClock() != DefaultSessionSeconds {
		t.Errorf("SessionClock() = %d, want %d", s.SessionClock(), DefaultSessionSeconds)
	}
	if audio.unlocks != 1 {
		t.Errorf("unlocks = %d, want 1", audio.unlocks)
	}
	q, ok := s.Current()
	if !ok {
		t.Fatal("Current() not ok during play")
	}
	if len(audio.played) != 1 || audio.played[0] != q.ID {
		t.Errorf("played = %v, want [%d]", audio.played, q.ID)
	}
	if len(audio.fills) == 0 {
		t.Error("starting a game scheduled no ahead fill")
	}
	for _, ids := range audio.fills {
		for _, id := range ids {
			if id == q.ID && s.Phase() == PhasePlaying {
				t.Errorf("ahead fill includes the playing question %d", id)
			}
		}
	}
}

func TestCorrectAnswerScoresRemainingSeconds(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		s.TickSecond()
	}
	q, _ := s.Current()

	s.SubmitAnswer(" " + q.Answer + " ")

	if s.Score() != 12 {
		t.Errorf("Score() = %d, want 12", s.Score())
	}
	if !s.InTransition() {
		t.Fatal("correct answer did not start a transition")
	}

	// The banner types out the praise message.
	s.StepBanner()
	if !strings.HasPrefix("정답", s.BannerText()) {
		t.Errorf("BannerText() = %q, want prefix of 정답", s.BannerText())
	}
}

func TestAnswerAtTenSecondsScoresTen(t *testing.T) {
	s, audio := newTestSession(t)
	if err := s.StartGame("Tester"); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Current()

	for i := 0; i < 5; i++ {
		s.TickSecond()
	}
	if s.QuestionClock() != 10 {
		t.Fatalf("QuestionClock() = %d, want 10", s.QuestionClock())
	}
	q, _ := s.Current()
	s.SubmitAnswer(q.Answer)

	if s.Score() != 10 {
		t.Errorf("Score() = %d, want 10", s.Score())
	}

	finishTransition(t, s)
	second, _ := s.Current()
	if second.ID == first.ID {
		t.Fatal("index did not advance")
	}
	if last := audio.played[len(audio.played)-1]; last != second.ID {
		t.Errorf("narration for %d did not begin, last played %d", second.ID, last)
	}
}

func TestWrongAnswerShowsHint(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}

	if s.Hint() != "" {
		t.Error("hint visible before any wrong answer")
	}

	s.SubmitAnswer("틀린답")
	if !s.WrongAttempt() {
		t.Error("WrongAttempt() = false after a miss")
	}
	if s.InTransition() {
		t.Error("wrong answer started a transition")
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d after a miss, want 0", s.Score())
	}

	q, _ := s.Current()
	masked := s.Hint()
	if len([]rune(masked)) != len([]rune(q.Answer)) {
		t.Fatalf("hint %q length mismatch with answer %q", masked, q.Answer)
	}

	// Early on everything is hidden. After enough seconds the first
	// character shows.
	if masked != strings.Repeat("_", len([]rune(q.Answer))) {
		t.Errorf("hint %q revealed characters too early", masked)
	}
	for i := 0; i < 6; i++ {
		s.TickSecond()
	}
	if []rune(s.Hint())[0] == '_' {
		t.Errorf("hint %q still hides the first character", s.Hint())
	}
}

func TestDoubleAdvanceYieldsOneStep(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Current()

	q, _ := s.Current()
	s.SubmitAnswer(q.Answer)
	score := s.Score()

	// A second submit and a skip land while the banner is running.
	s.SubmitAnswer(q.Answer)
	s.Skip()

	if s.Score() != score {
		t.Errorf("Score() = %d, duplicate submit scored again", s.Score())
	}

	finishTransition(t, s)
	second, _ := s.Current()
	if second.ID == first.ID {
		t.Error("session did not advance")
	}
	if s.QuestionClock() != DefaultQuestionSeconds {
		t.Errorf("QuestionClock() = %d after advance, want %d", s.QuestionClock(), DefaultQuestionSeconds)
	}
}

func TestSkipShowsNextBanner(t *testing.T) {
	s, audio := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}

	s.Skip()
	if !s.InTransition() {
		t.Fatal("Skip did not start a transition")
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d after skip, want 0", s.Score())
	}
	if audio.stops == 0 {
		t.Error("Skip did not stop narration")
	}

	for i := 0; i < 4; i++ {
		s.StepBanner()
	}
	if s.BannerText() != "다음문제" {
		t.Errorf("BannerText() = %q, want 다음문제", s.BannerText())
	}
	finishTransition(t, s)
}

func TestMusicStaysDuckedUntilTransitionCompletes(t *testing.T) {
	s, audio := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}

	q, _ := s.Current()
	s.SubmitAnswer(q.Answer)
	if audio.restores != 0 {
		t.Errorf("restores = %d at transition start, want 0", audio.restores)
	}

	finishTransition(t, s)
	if audio.restores != 1 {
		t.Errorf("restores = %d after transition, want 1", audio.restores)
	}
}

func TestQuestionTimeoutAutoAdvances(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Current()

	for i := 0; i < DefaultQuestionSeconds; i++ {
		s.TickSecond()
	}
	if !s.InTransition() {
		t.Fatal("question timeout did not start a transition")
	}
	if s.Score() != 0 {
		t.Errorf("timeout scored %d points", s.Score())
	}

	finishTransition(t, s)
	second, _ := s.Current()
	if second.ID == first.ID {
		t.Error("timeout did not advance the question")
	}
	if s.QuestionClock() != DefaultQuestionSeconds {
		t.Errorf("QuestionClock() = %d, want %d", s.QuestionClock(), DefaultQuestionSeconds)
	}
}

func TestQuestionClockPausesDuringTransition(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}
	q, _ := s.Current()
	s.SubmitAnswer(q.Answer)

	sessionBefore := s.SessionClock()
	s.TickSecond()
	s.TickSecond()

	if s.SessionClock() != sessionBefore-2 {
		t.Errorf("session clock = %d, want %d (keeps running)", s.SessionClock(), sessionBefore-2)
	}
}

func TestSessionEndRecordsScore(t *testing.T) {
	audio := &fakeAudio{}
	cfg := DefaultConfig()
	cfg.SessionSeconds = 3
	board := quiz.NewBoard()
	s := NewSession(cfg, testSet(), board, audio, rand.New(rand.NewSource(1)))

	if err := s.StartGame("영희"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		s.TickSecond()
	}

	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %s, want gameOver", s.Phase())
	}
	if audio.teardowns != 1 {
		t.Errorf("teardowns = %d, want 1", audio.teardowns)
	}
	if board.Len() != 1 {
		t.Fatalf("board entries = %d, want 1", board.Len())
	}
	if top := board.Top(1); top[0].Name != "영희" {
		t.Errorf("recorded name = %q, want 영희", top[0].Name)
	}

	// Ticks after game over change nothing.
	s.TickSecond()
	if board.Len() != 1 {
		t.Error("tick after game over recorded again")
	}
}

func TestGoToStartResets(t *testing.T) {
	s, audio := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}
	q, _ := s.Current()
	s.SubmitAnswer(q.Answer)
	finishTransition(t, s)

	fillsBefore := len(audio.fills)
	s.GoToStart()

	if s.Phase() != PhaseStart {
		t.Errorf("Phase() = %s, want start", s.Phase())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d after reset, want 0", s.Score())
	}
	if s.SessionClock() != DefaultSessionSeconds {
		t.Errorf("SessionClock() = %d, want %d", s.SessionClock(), DefaultSessionSeconds)
	}
	if audio.teardowns != 1 {
		t.Errorf("teardowns = %d, want 1", audio.teardowns)
	}
	if len(audio.fills) <= fillsBefore {
		t.Error("reset did not re-arm idle prefetch")
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() ok on the start screen")
	}
}

func TestAdjustSessionClockClamps(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 30; i++ {
		s.AdjustSessionClock(SessionClockStep)
	}
	if s.SessionClock() != MaxSessionSeconds {
		t.Errorf("SessionClock() = %d, want clamp at %d", s.SessionClock(), MaxSessionSeconds)
	}

	for i := 0; i < 60; i++ {
		s.AdjustSessionClock(-SessionClockStep)
	}
	if s.SessionClock() != MinSessionSeconds {
		t.Errorf("SessionClock() = %d, want clamp at %d", s.SessionClock(), MinSessionSeconds)
	}
}

func TestOrderWrapsAroundSet(t *testing.T) {
	s, audio := newTestSession(t)
	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}

	n := len(testSet())
	for i := 0; i < n; i++ {
		q, _ := s.Current()
		s.SubmitAnswer(q.Answer)
		finishTransition(t, s)
	}

	// One full cycle later the first question narrates again.
	if len(audio.played) != n+1 {
		t.Fatalf("played %d questions, want %d", len(audio.played), n+1)
	}
	if audio.played[0] != audio.played[n] {
		t.Errorf("order did not wrap: first=%d, after cycle=%d", audio.played[0], audio.played[n])
	}
}

func TestArmPrefetchOnlyOnStartScreen(t *testing.T) {
	s, audio := newTestSession(t)
	s.ArmPrefetch()
	if len(audio.fills) != 1 {
		t.Fatalf("fills = %d, want 1", len(audio.fills))
	}

	if err := s.StartGame("철수"); err != nil {
		t.Fatal(err)
	}
	before := len(audio.fills)
	s.ArmPrefetch()
	if len(audio.fills) != before {
		t.Error("ArmPrefetch ran during play")
	}
}
