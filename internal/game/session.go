package game

import (
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/speedquiz/internal/quiz"
)

// Timing and lookahead defaults.
const (
	DefaultQuestionSeconds = 15
	DefaultSessionSeconds  = 120
	MinSessionSeconds      = 10
	MaxSessionSeconds      = 300
	SessionClockStep       = 10

	DefaultInitialLookahead = 5
	DefaultLookahead        = 3

	// hintFirstDelay is how many seconds pass before the first answer
	// character may be revealed as a hint.
	hintFirstDelay = 5

	correctBanner = "정답"
	skipBanner    = "다음문제"

	anonymousName = "익명"
)

// ErrEmptyName rejects starting a game without a player name.
var ErrEmptyName = errors.New("player name is empty")

// Audio is what the session needs from the playback pipeline. The
// session never blocks on it; implementations run slow work off the
// calling goroutine.
type Audio interface {
	// Unlock primes the audio output from a user gesture.
	Unlock()
	// PlayQuestion fetches and narrates a question, ducking music
	// while the voice line runs.
	PlayQuestion(q quiz.Question)
	// StopNarration cuts the current voice line.
	StopNarration()
	DuckMusic()
	RestoreMusic()
	// ScheduleFill asks for the given questions to be synthesized
	// ahead of time.
	ScheduleFill(qs []quiz.Question)
	// Teardown cancels pending work and drops buffered audio.
	Teardown()
}

type nopAudio struct{}

func (nopAudio) Unlock()                      {}
func (nopAudio) PlayQuestion(quiz.Question)   {}
func (nopAudio) StopNarration()               {}
func (nopAudio) DuckMusic()                   {}
func (nopAudio) RestoreMusic()                {}
func (nopAudio) ScheduleFill([]quiz.Question) {}
func (nopAudio) Teardown()                    {}

// Config tunes session timing and prefetch depth.
type Config struct {
	QuestionSeconds  int
	SessionSeconds   int
	InitialLookahead int
	Lookahead        int
}

// DefaultConfig returns the standard game timing.
func DefaultConfig() Config {
	return Config{
		QuestionSeconds:  DefaultQuestionSeconds,
		SessionSeconds:   DefaultSessionSeconds,
		InitialLookahead: DefaultInitialLookahead,
		Lookahead:        DefaultLookahead,
	}
}

// Session runs one player's game: the question order, both countdown
// clocks, scoring, the transition banner, and the ranking board. It is
// driven from a single event loop; the advancing guard only defends
// against the same event being delivered twice.
type Session struct {
	cfg     Config
	machine *StateMachine
	banner  *Banner
	audio   Audio
	set     quiz.Set
	board   *quiz.Board
	rng     *rand.Rand

	order *quiz.Order
	index int

	playerName    string
	score         int
	questionClock int
	sessionClock  int

	wrong        bool
	hintRevealAt []int
	hintElapsed  int

	advancing atomic.Bool
}

// NewSession wires a session over a question set and ranking board.
// audio may be nil for a silent session.
func NewSession(cfg Config, set quiz.Set, board *quiz.Board, audio Audio, rng *rand.Rand) *Session {
	if cfg.QuestionSeconds <= 0 {
		cfg.QuestionSeconds = DefaultQuestionSeconds
	}
	if cfg.SessionSeconds <= 0 {
		cfg.SessionSeconds = DefaultSessionSeconds
	}
	if cfg.InitialLookahead <= 0 {
		cfg.InitialLookahead = DefaultInitialLookahead
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = DefaultLookahead
	}
	if audio == nil {
		audio = nopAudio{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		cfg:          cfg,
		machine:      NewStateMachine(),
		banner:       &Banner{},
		audio:        audio,
		set:          set,
		board:        board,
		rng:          rng,
		sessionClock: cfg.SessionSeconds,
	}
}

// Phase returns the current screen.
func (s *Session) Phase() Phase {
	return s.machine.Current()
}

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// QuestionClock returns seconds left on the current question.
func (s *Session) QuestionClock() int { return s.questionClock }

// SessionClock returns seconds left in the whole game.
func (s *Session) SessionClock() int { return s.sessionClock }

// PlayerName returns the name entered at start.
func (s *Session) PlayerName() string { return s.playerName }

// Board returns the ranking board.
func (s *Session) Board() *quiz.Board { return s.board }

// Current returns the active question. ok is false outside a game.
func (s *Session) Current() (quiz.Question, bool) {
	if s.order == nil || s.machine.Current() != PhasePlaying {
		return quiz.Question{}, false
	}
	return s.order.At(s.index), true
}

// InTransition reports whether the advance banner is running. Input
// and the question clock are held while it is.
func (s *Session) InTransition() bool {
	return s.banner.Active()
}

// BannerText returns the visible banner characters.
func (s *Session) BannerText() string { return s.banner.Text() }

// BannerInterval returns the delay before the next banner step.
func (s *Session) BannerInterval() time.Duration { return s.banner.StepInterval() }

// StepBanner advances the banner animation one tick.
func (s *Session) StepBanner() { s.banner.Step() }

// ArmPrefetch requests idle-time synthesis for the first questions of
// a fresh shuffle, so the opening of a game has audio ready. Called
// from the start screen.
func (s *Session) ArmPrefetch() {
	if s.machine.Current() != PhaseStart {
		return
	}
	s.shuffle()
	s.audio.ScheduleFill(s.upcoming(s.cfg.InitialLookahead, 0))
}

// StartGame moves from the start screen into play.
func (s *Session) StartGame(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := s.machine.Transition(PhasePlaying); err != nil {
		return err
	}

	// Must happen synchronously inside the keypress that started the
	// game, before any asynchronous playback.
	s.audio.Unlock()

	s.playerName = name
	s.score = 0
	s.sessionClock = s.cfg.SessionSeconds
	if s.order == nil {
		s.shuffle()
	}
	s.index = 0
	s.advancing.Store(false)
	s.banner.Cancel()
	s.beginQuestion()
	log.Info("game started", "player", name, "questions", s.order.Len())
	return nil
}

// SubmitAnswer checks text against the current question. A correct
// answer scores the remaining question seconds and advances; a wrong
// answer turns on the hint. Input during a transition is dropped.
func (s *Session) SubmitAnswer(text string) {
	q, ok := s.Current()
	if !ok || s.InTransition() {
		return
	}
	if !q.Matches(text) {
		s.wrong = true
		log.Debug("wrong answer", "question", q.ID)
		return
	}
	if !s.advancing.CompareAndSwap(false, true) {
		return
	}
	s.score += s.questionClock
	log.Info("correct answer", "question", q.ID, "earned", s.questionClock, "score", s.score)
	s.beginTransition(correctBanner)
}

// Skip abandons the current question without scoring.
func (s *Session) Skip() {
	if _, ok := s.Current(); !ok || s.InTransition() {
		return
	}
	if !s.advancing.CompareAndSwap(false, true) {
		return
	}
	log.Debug("question skipped", "question", s.order.At(s.index).ID)
	s.beginTransition(skipBanner)
}

// TickSecond advances both clocks by one second. The question clock
// pauses during a transition; the session clock never does.
func (s *Session) TickSecond() {
	if s.machine.Current() != PhasePlaying {
		return
	}

	s.sessionClock--
	if s.sessionClock <= 0 {
		s.sessionClock = 0
		s.endGame()
		return
	}

	if s.InTransition() {
		return
	}
	s.questionClock--
	s.hintElapsed++
	if s.questionClock <= 0 {
		s.questionClock = 0
		if s.advancing.CompareAndSwap(false, true) {
			log.Debug("question timed out", "question", s.order.At(s.index).ID)
			s.beginTransition(skipBanner)
		}
	}
}

// Hint returns the partially revealed answer, or "" when no hint is
// due. The hint only shows after a wrong answer, and characters appear
// over the life of the question.
func (s *Session) Hint() string {
	if !s.wrong {
		return ""
	}
	q, ok := s.Current()
	if !ok {
		return ""
	}
	runes := []rune(q.Answer)
	masked := make([]rune, len(runes))
	for i, r := range runes {
		if i < len(s.hintRevealAt) && s.hintElapsed >= s.hintRevealAt[i] {
			masked[i] = r
		} else {
			masked[i] = '_'
		}
	}
	return string(masked)
}

// WrongAttempt reports whether the player has missed this question.
func (s *Session) WrongAttempt() bool { return s.wrong }

// AdjustSessionClock shifts the session clock for debugging, clamped
// to the allowed range.
func (s *Session) AdjustSessionClock(delta int) {
	if s.machine.Current() != PhasePlaying {
		return
	}
	s.sessionClock += delta
	if s.sessionClock < MinSessionSeconds {
		s.sessionClock = MinSessionSeconds
	}
	if s.sessionClock > MaxSessionSeconds {
		s.sessionClock = MaxSessionSeconds
	}
}

// GoToStart resets everything back to the start screen from any phase.
func (s *Session) GoToStart() {
	cur := s.machine.Current()
	if cur == PhaseStart {
		return
	}
	if err := s.machine.Transition(PhaseStart); err != nil {
		return
	}
	if cur == PhasePlaying {
		s.audio.StopNarration()
		s.audio.Teardown()
	}
	s.banner.Cancel()
	s.advancing.Store(false)
	s.order = nil
	s.index = 0
	s.score = 0
	s.playerName = ""
	s.questionClock = 0
	s.sessionClock = s.cfg.SessionSeconds
	s.wrong = false
	s.ArmPrefetch()
}

// ShowRanking moves to the ranking screen where allowed.
func (s *Session) ShowRanking() {
	_ = s.machine.Transition(PhaseRanking)
}

func (s *Session) shuffle() {
	s.order = quiz.NewOrder(s.set, s.rng)
	s.index = 0
}

// upcoming lists the next n questions starting at offset from the
// current index, skipping the currently playing question's id.
func (s *Session) upcoming(n, offset int) []quiz.Question {
	skip := 0
	if s.machine.Current() == PhasePlaying && s.order != nil {
		skip = s.order.At(s.index).ID
	}
	return s.order.Upcoming(s.index+offset, n, skip)
}

func (s *Session) beginQuestion() {
	q := s.order.At(s.index)
	s.questionClock = s.cfg.QuestionSeconds
	s.wrong = false
	s.hintElapsed = 0
	s.hintRevealAt = revealTimes(q.Answer, s.cfg.QuestionSeconds, s.rng)
	s.audio.PlayQuestion(q)
	s.audio.ScheduleFill(s.upcoming(s.cfg.Lookahead, 1))
}

// beginTransition cuts the narration and runs the banner. The music
// stays ducked until the banner finishes.
func (s *Session) beginTransition(text string) {
	s.audio.StopNarration()
	s.banner.Start(text, s.completeAdvance)
}

func (s *Session) completeAdvance() {
	s.index = (s.index + 1) % s.order.Len()
	s.advancing.Store(false)
	if s.machine.Current() != PhasePlaying {
		return
	}
	s.audio.RestoreMusic()
	s.beginQuestion()
}

func (s *Session) endGame() {
	if err := s.machine.Transition(PhaseGameOver); err != nil {
		return
	}
	s.banner.Cancel()
	s.advancing.Store(false)
	s.audio.StopNarration()
	s.audio.Teardown()

	name := s.playerName
	if strings.TrimSpace(name) == "" {
		name = anonymousName
	}
	s.board.Record(name, s.score, time.Now())
	log.Info("game over", "player", name, "score", s.score)
}

// revealTimes assigns each answer character a seconds-elapsed threshold
// at which the hint shows it. The first character appears early and the
// rest are spread over the remaining time in random order.
func revealTimes(answer string, questionSeconds int, rng *rand.Rand) []int {
	runes := []rune(answer)
	n := len(runes)
	if n == 0 {
		return nil
	}
	times := make([]int, n)
	times[0] = hintFirstDelay
	if n == 1 {
		return times
	}

	remaining := questionSeconds - hintFirstDelay
	if remaining < 1 {
		remaining = 1
	}
	idx := make([]int, n-1)
	for i := range idx {
		idx[i] = i + 1
	}
	rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
	for pos, i := range idx {
		times[i] = hintFirstDelay + (pos+1)*remaining/n
	}
	return times
}
