package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trivialab/trivia-api/internal/trivia"
)

// QuestionRepository provides question access over Postgres. All listing
// queries order by primary key so pagination sees one canonical ordering.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = "id, question, answer, difficulty, category_id"

func (r *QuestionRepository) AllQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return scanQuestions(rows)
}

func (r *QuestionRepository) QuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE category_id = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query questions by category: %w", err)
	}
	return scanQuestions(rows)
}

// QuestionsMatching performs a case-insensitive substring match against
// the question text only.
func (r *QuestionRepository) QuestionsMatching(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE question ILIKE '%' || $1 || '%'
		ORDER BY id
	`, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return scanQuestions(rows)
}

func (r *QuestionRepository) QuestionByID(ctx context.Context, id int) (trivia.Question, error) {
	var q trivia.Question
	err := r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE id = $1
	`, id).Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Question{}, trivia.ErrNotFound
		}
		return trivia.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

func (r *QuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func (r *QuestionRepository) InsertQuestion(ctx context.Context, q trivia.Question) (trivia.Question, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (question, answer, difficulty, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, q.Question, q.Answer, q.Difficulty, q.CategoryID).Scan(&q.ID)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return trivia.ErrNotFound
	}
	return nil
}

func scanQuestions(rows pgx.Rows) ([]trivia.Question, error) {
	defer rows.Close()

	var questions []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.CategoryID); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
