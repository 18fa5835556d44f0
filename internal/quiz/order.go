package quiz

import "math/rand"

// Order is a shuffled permutation of a question set, consumed by a
// cyclic index. It is regenerated once per game session; a session is
// time-bounded, not question-count-bounded, so the cursor wraps
// instead of terminating.
type Order struct {
	questions []Question
}

// NewOrder builds a Fisher-Yates shuffled permutation of the set.
func NewOrder(s Set, rng *rand.Rand) *Order {
	qs := make([]Question, len(s))
	copy(qs, s)
	for i := len(qs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
	return &Order{questions: qs}
}

// Len returns the number of questions in the order.
func (o *Order) Len() int {
	return len(o.questions)
}

// At returns the question at position i, wrapping past the end.
func (o *Order) At(i int) Question {
	return o.questions[i%len(o.questions)]
}

// IDs returns the permutation's question IDs in order.
func (o *Order) IDs() []int {
	out := make([]int, len(o.questions))
	for i, q := range o.questions {
		out[i] = q.ID
	}
	return out
}

// Upcoming returns up to count questions starting at position start,
// wrapping cyclically and skipping the given ID. The skip avoids
// re-buffering the question that is being narrated right now.
func (o *Order) Upcoming(start, count, skipID int) []Question {
	if len(o.questions) == 0 {
		return nil
	}
	if count > len(o.questions) {
		count = len(o.questions)
	}
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		q := o.At(start + i)
		if q.ID == skipID {
			continue
		}
		out = append(out, q)
	}
	return out
}
