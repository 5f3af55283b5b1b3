package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorNextSkipsShownQuestions(t *testing.T) {
	selector := NewSelector()
	pool := makeQuestions(5)
	shown := []int{1, 3, 5}

	for i := 0; i < 50; i++ {
		next, err := selector.Next(pool, shown)
		require.NoError(t, err)
		assert.NotContains(t, shown, next.ID)
		assert.Contains(t, []int{2, 4}, next.ID)
	}
}

func TestSelectorNextSingleCandidateIsDeterministic(t *testing.T) {
	selector := NewSelector()
	pool := makeQuestions(5)
	shown := []int{1, 2, 3, 4}

	next, err := selector.Next(pool, shown)
	require.NoError(t, err)
	assert.Equal(t, 5, next.ID)
}

func TestSelectorNextEmptyPoolIsExhausted(t *testing.T) {
	selector := NewSelector()

	_, err := selector.Next(nil, nil)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestSelectorNextAllShownIsExhausted(t *testing.T) {
	selector := NewSelector()
	pool := makeQuestions(4)

	_, err := selector.Next(pool, []int{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestSelectorNextIgnoresUnknownShownIDs(t *testing.T) {
	selector := NewSelector()
	pool := makeQuestions(2)

	next, err := selector.Next(pool, []int{99, 1, 100})
	require.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}

// The draw must be made against the filtered candidate slice, so the
// index passed to the random source is bounded by the candidate count,
// not the pool size.
func TestSelectorNextDrawsFromFilteredCandidates(t *testing.T) {
	var sawN []int
	selector := &Selector{intn: func(n int) int {
		sawN = append(sawN, n)
		return n - 1
	}}
	pool := makeQuestions(10)

	next, err := selector.Next(pool, []int{1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, sawN, "one draw over the 3 eligible candidates")
	assert.Equal(t, 10, next.ID)
}

func TestSelectorNextUniformOverCandidates(t *testing.T) {
	selector := NewSelector()
	pool := makeQuestions(6)
	shown := []int{2, 5}

	const trials = 12000
	counts := map[int]int{}
	for i := 0; i < trials; i++ {
		next, err := selector.Next(pool, shown)
		require.NoError(t, err)
		counts[next.ID]++
	}

	require.Len(t, counts, 4)
	expected := trials / 4
	for id, count := range counts {
		// 4 candidates, ~3000 draws each; 15% tolerance keeps flakes
		// out while still catching non-uniform draws.
		assert.InDelta(t, expected, count, float64(expected)*0.15, "question %d drawn %d times", id, count)
	}
}
