package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/trivialab/trivia-api/internal/logging"
	"github.com/trivialab/trivia-api/pkg/http/respond"
)

// HTTPHandlers provides the REST endpoints for the trivia API.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "trivia_http").Logger(),
	}
}

// GetCategories handles GET /categories.
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// Questions dispatches GET (paginated listing) and POST (creation) on
// /questions.
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.createQuestion(w, r)
	default:
		respond.Error(w, http.StatusMethodNotAllowed)
	}
}

func (h *HTTPHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        list.Page.Questions,
		"total_questions":  list.Page.Total,
		"categories":       list.Categories,
		"current_category": nil,
	})
}

func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request) {
	var in CreateQuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateQuestion(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"id":         created.ID,
		"question":   created.Question,
		"answer":     created.Answer,
		"difficulty": created.Difficulty,
		"category":   created.CategoryID,
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respond.Error(w, http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound)
		return
	}

	remaining, err := h.service.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         id,
		"total_questions": remaining,
	})
}

// SearchQuestions handles POST /questions/search.
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SearchTerm string `json:"searchTerm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest)
		return
	}

	page, err := h.service.Search(r.Context(), req.SearchTerm)
	if err != nil {
		// Query failures surface as 400 on this route; an empty term
		// stays 422.
		if errors.Is(err, ErrUnprocessable) {
			respond.Error(w, http.StatusUnprocessableEntity)
			return
		}
		logger := h.requestLogger(r)
		logger.Error().Err(err).Msg("search failed")
		respond.Error(w, http.StatusBadRequest)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       page.Questions,
		"total_questions": page.Total,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions.
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed)
		return
	}

	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound)
		return
	}

	list, err := h.service.ListQuestionsByCategory(r.Context(), categoryID, pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        list.Page.Questions,
		"total_questions":  list.Page.Total,
		"current_category": list.CurrentCategory,
	})
}

// PlayQuiz handles POST /quizzes: one non-repeating random draw per call.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		PreviousQuestions []int `json:"previous_questions"`
		QuizCategory      struct {
			ID int `json:"id"`
		} `json:"quiz_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest)
		return
	}

	next, err := h.service.NextQuizQuestion(r.Context(), req.QuizCategory.ID, req.PreviousQuestions)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	// next is nil when the round is exhausted; the client reads
	// question: null as end-of-round.
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": next,
	})
}

// respondServiceError translates the service error taxonomy to the
// generic envelope.
func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		respond.ErrorMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound)
	case errors.Is(err, ErrUnprocessable):
		respond.Error(w, http.StatusUnprocessableEntity)
	default:
		logger := h.requestLogger(r)
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respond.Error(w, http.StatusInternalServerError)
	}
}

// requestLogger prefers the request-scoped logger (request id, method,
// path) injected by the server middleware, falling back to the
// component logger when the handler runs without it.
func (h *HTTPHandlers) requestLogger(r *http.Request) zerolog.Logger {
	if logger := logging.FromContext(r.Context()); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return h.logger
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
