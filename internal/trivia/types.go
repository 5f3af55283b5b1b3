package trivia

// Difficulty bounds for question creation.
const (
	DifficultyMin = 1
	DifficultyMax = 3
)

// CategoryAny is the sentinel category id meaning "draw from the full pool".
const CategoryAny = 0

// Question is a trivia question as delivered to clients. Immutable once
// fetched; the category is a plain foreign-key value, resolved via the
// Store when the label is needed.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	CategoryID int    `json:"category"`
}

// Category labels a group of questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Page is a derived view over an ordered question collection: one
// fixed-size window plus the total size of the unsliced collection.
type Page struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total_questions"`
}

// CategoryMap renders categories the way the API exposes them:
// id -> type label.
func CategoryMap(categories []Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
