package trivia

import (
	"fmt"
	"strings"
)

// CreateQuestionInput carries the raw fields of a question-creation
// request before validation.
type CreateQuestionInput struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	CategoryID int    `json:"category"`
}

// validate checks the field-level rules. Category existence is checked
// separately by the service, since it needs a Store lookup.
func (in CreateQuestionInput) validate() error {
	if strings.TrimSpace(in.Question) == "" {
		return &ValidationError{Field: "question", Message: "question text is required"}
	}
	if strings.TrimSpace(in.Answer) == "" {
		return &ValidationError{Field: "answer", Message: "answer text is required"}
	}
	if in.Difficulty < DifficultyMin || in.Difficulty > DifficultyMax {
		return &ValidationError{
			Field:   "difficulty",
			Message: fmt.Sprintf("difficulty must be between %d and %d", DifficultyMin, DifficultyMax),
		}
	}
	return nil
}
