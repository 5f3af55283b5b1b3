package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Store is the data access surface the trivia core consumes. The pgx
// implementation lives in internal/db/repository; tests substitute an
// in-memory stub. Every method returns a consistent snapshot per call;
// the core never coordinates multi-statement transactions.
type Store interface {
	AllQuestions(ctx context.Context) ([]Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	QuestionsMatching(ctx context.Context, term string) ([]Question, error)
	QuestionByID(ctx context.Context, id int) (Question, error)
	CountQuestions(ctx context.Context) (int, error)
	InsertQuestion(ctx context.Context, q Question) (Question, error)
	DeleteQuestion(ctx context.Context, id int) error
	Categories(ctx context.Context) ([]Category, error)
	CategoryByID(ctx context.Context, id int) (Category, error)
}

// CategoryCache caches the id -> label category map (implemented by the
// Redis-backed Cache). A (nil, nil) Get is a cache miss.
type CategoryCache interface {
	Get(ctx context.Context) (map[int]string, error)
	Set(ctx context.Context, categories map[int]string) error
}

// Service implements the trivia game operations on top of a Store.
type Service struct {
	store    Store
	cache    CategoryCache
	selector *Selector
	pageSize int
	logger   zerolog.Logger
}

type ServiceOptions struct {
	// PageSize overrides the fixed questions-per-page constant.
	// Zero means DefaultPageSize.
	PageSize int
}

func NewService(store Store, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	size := opts.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	return &Service{
		store:    store,
		cache:    cache,
		selector: NewSelector(),
		pageSize: size,
		logger:   logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns the full id -> label category map, served from the
// cache when warm. An empty catalog is reported as ErrNotFound.
func (s *Service) Categories(ctx context.Context) (map[int]string, error) {
	m, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, ErrNotFound
	}
	return m, nil
}

// categoryMap fetches the catalog without the empty-is-404 policy, for
// callers that embed it in a larger response.
func (s *Service) categoryMap(ctx context.Context) (map[int]string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		}
	}

	categories, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	m := CategoryMap(categories)
	if s.cache != nil && len(m) > 0 {
		if err := s.cache.Set(ctx, m); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return m, nil
}

// QuestionList is one page of questions plus the category catalog and
// the category the listing was scoped to, shaped for the API.
type QuestionList struct {
	Page            Page
	Categories      map[int]string
	CurrentCategory string
}

// ListQuestions returns the requested page over all questions in
// canonical order. A page beyond the data is ErrNotFound.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionList, error) {
	questions, err := s.store.AllQuestions(ctx)
	if err != nil {
		return QuestionList{}, fmt.Errorf("fetch questions: %w", err)
	}

	paged := Paginate(questions, page, s.pageSize)
	if len(paged.Questions) == 0 {
		return QuestionList{}, ErrNotFound
	}

	categories, err := s.categoryMap(ctx)
	if err != nil {
		return QuestionList{}, err
	}

	return QuestionList{Page: paged, Categories: categories}, nil
}

// ListQuestionsByCategory returns the requested page over one category's
// questions, with the category label for the response. Unknown category
// or an empty page is ErrNotFound.
func (s *Service) ListQuestionsByCategory(ctx context.Context, categoryID, page int) (QuestionList, error) {
	category, err := s.store.CategoryByID(ctx, categoryID)
	if err != nil {
		return QuestionList{}, err
	}

	questions, err := s.store.QuestionsByCategory(ctx, categoryID)
	if err != nil {
		return QuestionList{}, fmt.Errorf("fetch category questions: %w", err)
	}

	paged := Paginate(questions, page, s.pageSize)
	if len(paged.Questions) == 0 {
		return QuestionList{}, ErrNotFound
	}

	return QuestionList{Page: paged, CurrentCategory: category.Type}, nil
}

// Search returns every question whose text contains term,
// case-insensitively, in canonical order. No matches is a success with
// an empty page; an empty term is rejected as ErrUnprocessable.
func (s *Service) Search(ctx context.Context, term string) (Page, error) {
	if term == "" {
		return Page{}, fmt.Errorf("empty search term: %w", ErrUnprocessable)
	}

	questions, err := s.store.QuestionsMatching(ctx, term)
	if err != nil {
		return Page{}, fmt.Errorf("search questions: %w", err)
	}

	return Page{Questions: questions, Total: len(questions)}, nil
}

// CreateQuestion validates the input and persists a new question.
// Validation failures, including an unresolvable category id, are
// ValidationError; nothing is persisted unless validation passes.
func (s *Service) CreateQuestion(ctx context.Context, in CreateQuestionInput) (Question, error) {
	if err := in.validate(); err != nil {
		return Question{}, err
	}
	if _, err := s.store.CategoryByID(ctx, in.CategoryID); err != nil {
		return Question{}, &ValidationError{Field: "category", Message: "category does not exist"}
	}

	created, err := s.store.InsertQuestion(ctx, Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Difficulty: in.Difficulty,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return created, nil
}

// DeleteQuestion removes a question and returns the remaining total.
// An unknown id is ErrNotFound (deleting twice is the same terminal
// state); a failure during an otherwise-valid delete is ErrUnprocessable.
func (s *Service) DeleteQuestion(ctx context.Context, id int) (int, error) {
	if _, err := s.store.QuestionByID(ctx, id); err != nil {
		return 0, err
	}

	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return 0, fmt.Errorf("delete question %d: %w: %v", id, ErrUnprocessable, err)
	}

	remaining, err := s.store.CountQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return remaining, nil
}

// NextQuizQuestion draws one unseen question for a quiz round.
// categoryID CategoryAny means the full pool. An empty pool (unknown
// category included) is ErrNotFound; an exhausted round returns
// (nil, nil) and the API renders question: null.
func (s *Service) NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*Question, error) {
	var (
		pool []Question
		err  error
	)
	if categoryID == CategoryAny {
		pool, err = s.store.AllQuestions(ctx)
	} else {
		pool, err = s.store.QuestionsByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch quiz pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrNotFound
	}

	next, err := s.selector.Next(pool, previous)
	if errors.Is(err, ErrExhausted) {
		// Normal end of a round.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}
