package game

import "testing"

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseStart, "start"},
		{PhasePlaying, "playing"},
		{PhaseGameOver, "gameOver"},
		{PhaseRanking, "ranking"},
		{Phase(99), "phase(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.phase.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStateMachineTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Phase
		to      Phase
		allowed bool
	}{
		{"start to playing", PhaseStart, PhasePlaying, true},
		{"start to ranking", PhaseStart, PhaseRanking, true},
		{"start to gameOver", PhaseStart, PhaseGameOver, false},
		{"playing to gameOver", PhasePlaying, PhaseGameOver, true},
		{"playing to start", PhasePlaying, PhaseStart, true},
		{"playing to ranking", PhasePlaying, PhaseRanking, false},
		{"gameOver to start", PhaseGameOver, PhaseStart, true},
		{"gameOver to ranking", PhaseGameOver, PhaseRanking, true},
		{"gameOver to playing", PhaseGameOver, PhasePlaying, false},
		{"ranking to start", PhaseRanking, PhaseStart, true},
		{"ranking to playing", PhaseRanking, PhasePlaying, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &StateMachine{current: tt.from, onEnter: make(map[Phase]func())}
			if got := m.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%s) = %v, want %v", tt.to, got, tt.allowed)
			}

			err := m.Transition(tt.to)
			if tt.allowed {
				if err != nil {
					t.Errorf("Transition(%s) error = %v", tt.to, err)
				}
				if m.Current() != tt.to {
					t.Errorf("Current() = %s, want %s", m.Current(), tt.to)
				}
			} else {
				if err == nil {
					t.Errorf("Transition(%s) error = nil, want rejection", tt.to)
				}
				if m.Current() != tt.from {
					t.Errorf("rejected transition moved the machine to %s", m.Current())
				}
			}
		})
	}
}

func TestStateMachineOnEnter(t *testing.T) {
	m := NewStateMachine()
	entered := 0
	m.OnEnter(PhasePlaying, func() { entered++ })

	if err := m.Transition(PhasePlaying); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if entered != 1 {
		t.Errorf("OnEnter hook ran %d times, want 1", entered)
	}

	// A rejected transition must not fire hooks.
	_ = m.Transition(PhaseRanking)
	if entered != 1 {
		t.Errorf("rejected transition fired a hook")
	}
}
