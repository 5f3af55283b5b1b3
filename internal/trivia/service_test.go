package trivia

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a map-backed Store for tests. Listings report in primary
// key order, matching the canonical ordering of the pgx repository.
type memStore struct {
	questions  map[int]Question
	categories map[int]Category
	nextID     int

	deleteErr error
	insertErr error
}

func newMemStore(questions []Question, categories []Category) *memStore {
	s := &memStore{
		questions:  map[int]Question{},
		categories: map[int]Category{},
		nextID:     1,
	}
	for _, q := range questions {
		s.questions[q.ID] = q
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

func (s *memStore) sorted(keep func(Question) bool) []Question {
	var out []Question
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) AllQuestions(context.Context) ([]Question, error) {
	return s.sorted(func(Question) bool { return true }), nil
}

func (s *memStore) QuestionsByCategory(_ context.Context, categoryID int) ([]Question, error) {
	return s.sorted(func(q Question) bool { return q.CategoryID == categoryID }), nil
}

func (s *memStore) QuestionsMatching(_ context.Context, term string) ([]Question, error) {
	term = strings.ToLower(term)
	return s.sorted(func(q Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	}), nil
}

func (s *memStore) QuestionByID(_ context.Context, id int) (Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (s *memStore) CountQuestions(context.Context) (int, error) {
	return len(s.questions), nil
}

func (s *memStore) InsertQuestion(_ context.Context, q Question) (Question, error) {
	if s.insertErr != nil {
		return Question{}, s.insertErr
	}
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = q
	return q, nil
}

func (s *memStore) DeleteQuestion(_ context.Context, id int) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.questions[id]; !ok {
		return ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *memStore) Categories(context.Context) ([]Category, error) {
	var out []Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) CategoryByID(_ context.Context, id int) (Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func testCategories() []Category {
	return []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "History"},
	}
}

func newTestService(store Store) *Service {
	return NewService(store, nil, ServiceOptions{}, zerolog.Nop())
}

func TestCategoriesReturnsFullMap(t *testing.T) {
	svc := newTestService(newMemStore(nil, testCategories()))

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Science", 2: "History"}, categories)
}

func TestCategoriesEmptyCatalogIsNotFound(t *testing.T) {
	svc := newTestService(newMemStore(nil, nil))

	_, err := svc.Categories(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListQuestionsPaginates(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(25), testCategories()))

	list, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list.Page.Questions, 10)
	assert.Equal(t, 25, list.Page.Total)
	assert.Equal(t, "Science", list.Categories[1])

	list, err = svc.ListQuestions(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, list.Page.Questions, 5)
	assert.Equal(t, 25, list.Page.Total)
}

func TestListQuestionsTolerantOfEmptyCatalog(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(3), nil))

	list, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list.Page.Questions, 3)
	assert.Empty(t, list.Categories)
}

func TestListQuestionsPastLastPageIsNotFound(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(5), testCategories()))

	_, err := svc.ListQuestions(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListQuestionsByCategoryResolvesLabel(t *testing.T) {
	questions := makeQuestions(6) // categories alternate 1, 2
	svc := newTestService(newMemStore(questions, testCategories()))

	list, err := svc.ListQuestionsByCategory(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "History", list.CurrentCategory)
	assert.Equal(t, 3, list.Page.Total)
	for _, q := range list.Page.Questions {
		assert.Equal(t, 2, q.CategoryID)
	}
}

func TestListQuestionsByCategoryUnknownCategoryIsNotFound(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(6), testCategories()))

	_, err := svc.ListQuestionsByCategory(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchMatchesCaseInsensitively(t *testing.T) {
	questions := []Question{
		{ID: 1, Question: "Which eggs are the largest?", Answer: "Ostrich", Difficulty: 1, CategoryID: 1},
		{ID: 2, Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", Difficulty: 2, CategoryID: 2},
		{ID: 3, Question: "What is an EGGPLANT also called?", Answer: "Aubergine", Difficulty: 1, CategoryID: 1},
	}
	svc := newTestService(newMemStore(questions, testCategories()))

	page, err := svc.Search(context.Background(), "eg")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Questions[0].ID)
	assert.Equal(t, 3, page.Questions[1].ID)
}

func TestSearchNoMatchesIsSuccess(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(3), testCategories()))

	page, err := svc.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Questions)
}

func TestSearchEmptyTermIsUnprocessable(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(3), testCategories()))

	_, err := svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestCreateQuestion(t *testing.T) {
	store := newMemStore(nil, testCategories())
	svc := newTestService(store)

	created, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question:   "What is the speed of light?",
		Answer:     "299792458 m/s",
		Difficulty: 3,
		CategoryID: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	stored, err := store.QuestionByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestCreateQuestionValidation(t *testing.T) {
	cases := []struct {
		name  string
		input CreateQuestionInput
		field string
	}{
		{
			name:  "missing question text",
			input: CreateQuestionInput{Answer: "a", Difficulty: 1, CategoryID: 1},
			field: "question",
		},
		{
			name:  "blank answer",
			input: CreateQuestionInput{Question: "q?", Answer: "   ", Difficulty: 1, CategoryID: 1},
			field: "answer",
		},
		{
			name:  "difficulty too low",
			input: CreateQuestionInput{Question: "q?", Answer: "a", Difficulty: 0, CategoryID: 1},
			field: "difficulty",
		},
		{
			name:  "difficulty too high",
			input: CreateQuestionInput{Question: "q?", Answer: "a", Difficulty: 4, CategoryID: 1},
			field: "difficulty",
		},
		{
			name:  "unknown category",
			input: CreateQuestionInput{Question: "q?", Answer: "a", Difficulty: 2, CategoryID: 42},
			field: "category",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(nil, testCategories())
			svc := newTestService(store)

			_, err := svc.CreateQuestion(context.Background(), tc.input)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Empty(t, store.questions, "nothing may be persisted on validation failure")
		})
	}
}

func TestDeleteQuestionReturnsRemainingTotal(t *testing.T) {
	store := newMemStore(makeQuestions(5), testCategories())
	svc := newTestService(store)

	remaining, err := svc.DeleteQuestion(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)

	// Deleting the same id again is the not-found terminal state.
	_, err = svc.DeleteQuestion(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteQuestionFailureIsUnprocessable(t *testing.T) {
	store := newMemStore(makeQuestions(2), testCategories())
	store.deleteErr = errors.New("row locked")
	svc := newTestService(store)

	_, err := svc.DeleteQuestion(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestNextQuizQuestionExcludesPrevious(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(5), testCategories()))

	previous := []int{1, 2, 3}
	for i := 0; i < 30; i++ {
		next, err := svc.NextQuizQuestion(context.Background(), CategoryAny, previous)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.NotContains(t, previous, next.ID)
	}
}

func TestNextQuizQuestionScopedToCategory(t *testing.T) {
	questions := []Question{
		{ID: 1, Question: "q1", Answer: "a", Difficulty: 1, CategoryID: 2},
		{ID: 2, Question: "q2", Answer: "a", Difficulty: 1, CategoryID: 2},
		{ID: 3, Question: "q3", Answer: "a", Difficulty: 1, CategoryID: 2},
		{ID: 4, Question: "q4", Answer: "a", Difficulty: 1, CategoryID: 2},
		{ID: 5, Question: "q5", Answer: "a", Difficulty: 1, CategoryID: 2},
	}
	svc := newTestService(newMemStore(questions, testCategories()))

	next, err := svc.NextQuizQuestion(context.Background(), 2, []int{1, 2, 3, 4})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 5, next.ID, "only one eligible candidate remains")
}

func TestNextQuizQuestionExhaustedRoundReturnsNil(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(3), testCategories()))

	next, err := svc.NextQuizQuestion(context.Background(), CategoryAny, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Nil(t, next, "exhausted round is a success with a null question")
}

func TestNextQuizQuestionEmptyPoolIsNotFound(t *testing.T) {
	svc := newTestService(newMemStore(makeQuestions(3), testCategories()))

	_, err := svc.NextQuizQuestion(context.Background(), 99, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
