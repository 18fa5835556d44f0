package synth

import "math/rand"

// Voice is one narration profile: a remote voice ID plus an emotional style
// tag and a speed multiplier.
type Voice struct {
	ID    string
	Name  string
	Style string
	Speed float64
}

// voices is the fixed profile set the narration rotates through.
var voices = []Voice{
	{ID: "7923018d32ff96a5d2ccc5", Name: "Goro", Style: "happy", Speed: 1.2},
	{ID: "1d1e8432baf80566635226", Name: "Rachel", Style: "happy", Speed: 1.2},
	{ID: "c913e4f120724f32fb72de", Name: "Rick", Style: "embarrassed", Speed: 1.2},
	{ID: "32d43349abb5df0c414df1", Name: "Evan", Style: "sad", Speed: 1.2},
	{ID: "8f613eacb1f3ccd5abb1cb", Name: "Kadako", Style: "neutral", Speed: 1.2},
	{ID: "812658ca9168fd9e2a9afe", Name: "Saza", Style: "neutral", Speed: 1.3},
	{ID: "084714312eb4ec06fbfe51", Name: "Tilly", Style: "shy", Speed: 1.2},
	{ID: "52dc253df44d06aa7f0867", Name: "Bella", Style: "angry", Speed: 1.2},
	{ID: "7c8586b2869391ac4c7389", Name: "Dorothy", Style: "excited", Speed: 1.2},
	{ID: "5a56362b7597d7e3218bdf", Name: "Jack", Style: "angry", Speed: 1.0},
	{ID: "427bbfa89704dfba8feed4", Name: "Kaori", Style: "surprised", Speed: 1.2},
	{ID: "d2309f803e351a6683438b", Name: "Yepi", Style: "sleepy", Speed: 1.1},
	{ID: "7f8873011eeba6f11b750f", Name: "Ken", Style: "angry", Speed: 1.2},
}

// Voices returns a copy of the full voice profile set.
func Voices() []Voice {
	out := make([]Voice, len(voices))
	copy(out, voices)
	return out
}

// Selector picks a voice profile uniformly at random per request.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector backed by the given random source.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Pick returns a uniformly random voice profile.
func (s *Selector) Pick() Voice {
	return voices[s.rng.Intn(len(voices))]
}
