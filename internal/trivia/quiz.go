package trivia

import "math/rand/v2"

// Selector picks the next question for a quiz round. Rounds carry no
// server-side state: the caller supplies the full history of shown
// question IDs on every call.
type Selector struct {
	intn func(n int) int
}

// NewSelector returns a Selector drawing from the process-wide random
// source. The source is safe for concurrent use and needs no seeding.
func NewSelector() *Selector {
	return &Selector{intn: rand.IntN}
}

// Next returns one question from pool whose ID is not in shown, chosen
// uniformly among the eligible candidates. It returns ErrExhausted when
// the pool is empty or every question has already been shown.
//
// The pool is filtered first and the draw made against the filtered
// slice, so a single draw always suffices regardless of how large the
// shown set has grown.
func (s *Selector) Next(pool []Question, shown []int) (Question, error) {
	if len(pool) == 0 {
		return Question{}, ErrExhausted
	}

	seen := make(map[int]struct{}, len(shown))
	for _, id := range shown {
		seen[id] = struct{}{}
	}

	candidates := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return Question{}, ErrExhausted
	}

	return candidates[s.intn(len(candidates))], nil
}
