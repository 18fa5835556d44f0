// Package quiz holds the question set, the shuffled question order, and the
// in-memory ranking board for the speed quiz.
package quiz

import "strings"

// Question is a single word-definition prompt. The Answer is compared
// case-insensitively against trimmed user input.
type Question struct {
	ID     int
	Answer string
	Prompt string
}

// Matches reports whether the given input is a correct answer.
func (q Question) Matches(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(q.Answer))
}

// Set is an immutable collection of questions, read-only to the rest of the
// game.
type Set []Question

// ByID looks up a question by its ID.
func (s Set) ByID(id int) (Question, bool) {
	for _, q := range s {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// IDs returns the IDs of all questions in the set.
func (s Set) IDs() []int {
	ids := make([]int, len(s))
	for i, q := range s {
		ids[i] = q.ID
	}
	return ids
}

// DefaultSet returns the built-in ad-industry question set.
func DefaultSet() Set {
	return Set{
		{ID: 1, Answer: "간접광고", Prompt: "드라마 속 주인공이 자연스럽게 특정 제품을 쓰는 광고 방식을 무엇이라고 하나요?"},
		{ID: 2, Answer: "슈퍼볼", Prompt: "스포츠 경기 중 가장 광고료가 비싼 미국의 유명한 행사는 무엇일까요?"},
		{ID: 4, Answer: "클릭광고", Prompt: "인터넷 광고에서 이용자가 한번 클릭할 때마다 광고비가 지불되는 방식은 무엇인가요?"},
		{ID: 5, Answer: "로고", Prompt: "회사나 브랜드의 특징을 가장 간단하게 그림으로 나타낸 것은 무엇이라고 하나요?"},
		{ID: 11, Answer: "목소리", Prompt: "라디오 광고는 화면이 없기 때문에 무엇을 가장 잘 활용해야 할까요?"},
		{ID: 12, Answer: "황금시간대", Prompt: "특정 시간대에 광고비가 훨씬 비싼데, 이런 시간을 방송용어로 뭐라고 부를까요?"},
		{ID: 13, Answer: "소비자", Prompt: "광고를 만드는 사람이 항상 가장 중요하게 생각해야 할 최종 대상은 누구일까요?"},
		{ID: 21, Answer: "옥외광고", Prompt: "거리나 건물 외부에서 볼 수 있는 커다란 광고판을 부르는 쉬운 말은 무엇일까요?"},
		{ID: 22, Answer: "중간광고", Prompt: "텔레비전 프로그램이 중간에 쉬는 시간에 보여주는 광고를 뭐라고 하나요?"},
		{ID: 24, Answer: "세뇌효과", Prompt: "광고 음악을 계속 듣다 보면 나도 모르게 기억하고 따라 부르는 효과를 뭐라고 할까요?"},
		{ID: 25, Answer: "시청률", Prompt: "특정 광고를 본 사람의 수를 퍼센트(%)로 나타낸 지표를 뭐라고 하나요?"},
		{ID: 27, Answer: "체험단", Prompt: "광고하는 제품을 직접 만져보거나 경험해 볼 수 있는 사람들을 뭐라고 부를까요?"},
	}
}
