package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Store bundles the question and category repositories behind the
// trivia.Store surface.
type Store struct {
	*QuestionRepository
	*CategoryRepository
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		QuestionRepository: NewQuestionRepository(pool),
		CategoryRepository: NewCategoryRepository(pool),
	}
}
