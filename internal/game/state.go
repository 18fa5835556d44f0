// Package game holds the quiz session state machine and timing rules.
package game

import "fmt"

// Phase is a top-level screen of the quiz.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseRanking
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameOver"
	case PhaseRanking:
		return "ranking"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// transitions lists the phases reachable from each phase.
var transitions = map[Phase][]Phase{
	PhaseStart:    {PhasePlaying, PhaseRanking},
	PhasePlaying:  {PhaseGameOver, PhaseStart},
	PhaseGameOver: {PhaseStart, PhaseRanking},
	PhaseRanking:  {PhaseStart},
}

// StateMachine tracks the current phase and validates moves between
// phases against the transition table.
type StateMachine struct {
	current Phase
	onEnter map[Phase]func()
}

// NewStateMachine starts at the start screen.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: PhaseStart,
		onEnter: make(map[Phase]func()),
	}
}

// Current returns the active phase.
func (m *StateMachine) Current() Phase {
	return m.current
}

// OnEnter registers a hook run whenever the machine enters phase.
func (m *StateMachine) OnEnter(phase Phase, fn func()) {
	m.onEnter[phase] = fn
}

// CanTransition reports whether moving to next is allowed.
func (m *StateMachine) CanTransition(next Phase) bool {
	for _, allowed := range transitions[m.current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves to next, running its OnEnter hook. Disallowed moves
// return an error and leave the machine unchanged.
func (m *StateMachine) Transition(next Phase) error {
	if !m.CanTransition(next) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, next)
	}
	m.current = next
	if fn, ok := m.onEnter[next]; ok {
		fn()
	}
	return nil
}
