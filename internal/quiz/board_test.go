package quiz

import (
	"testing"
	"time"
)

func TestBoardDescendingOrder(t *testing.T) {
	b := NewBoard()
	now := time.Now()
	b.Record("a", 10, now)
	b.Record("b", 30, now)
	b.Record("c", 20, now)

	top := b.Top(3)
	scores := []int{top[0].Score, top[1].Score, top[2].Score}
	want := []int{30, 20, 10}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("Top scores = %v, want %v", scores, want)
		}
	}
}

func TestBoardTiesKeepInsertionOrder(t *testing.T) {
	b := NewBoard()
	now := time.Now()
	b.Record("first", 50, now)
	b.Record("second", 50, now)

	top := b.Top(2)
	if top[0].Name != "first" || top[1].Name != "second" {
		t.Errorf("tie order = %q, %q, want first, second", top[0].Name, top[1].Name)
	}
}

func TestBoardCap(t *testing.T) {
	b := NewBoard()
	now := time.Now()
	for i := 0; i < BoardLimit+5; i++ {
		b.Record("p", i, now)
	}

	if b.Len() != BoardLimit {
		t.Errorf("Len() = %d, want %d", b.Len(), BoardLimit)
	}

	// The lowest scores fall off the bottom.
	top := b.Top(BoardLimit)
	if top[len(top)-1].Score != 5 {
		t.Errorf("lowest retained score = %d, want 5", top[len(top)-1].Score)
	}
}

func TestBoardTopBeyondLen(t *testing.T) {
	b := NewBoard()
	b.Record("only", 1, time.Now())
	if got := b.Top(10); len(got) != 1 {
		t.Errorf("Top(10) len = %d, want 1", len(got))
	}
}
