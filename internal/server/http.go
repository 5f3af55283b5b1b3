package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/trivialab/trivia-api/internal/config"
	"github.com/trivialab/trivia-api/internal/trivia"
	"github.com/trivialab/trivia-api/pkg/http/respond"
)

// NewHTTPServer wires the trivia routes plus the operational endpoints
// (health, metrics) behind the shared middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers *trivia.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/categories", handlers.GetCategories)
	mux.HandleFunc("/categories/{id}/questions", handlers.QuestionsByCategory)
	mux.HandleFunc("/questions", handlers.Questions)
	mux.HandleFunc("/questions/search", handlers.SearchQuestions)
	mux.HandleFunc("/questions/{id}", handlers.DeleteQuestion)
	mux.HandleFunc("/quizzes", handlers.PlayQuiz)

	handler := Chain(NotFoundJSON(mux),
		RequestLogging(logger),
		Metrics(),
		CORS(cfg.CORS),
	)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

// NotFoundJSON wraps the mux so unmatched routes get the JSON envelope
// instead of the default plain-text 404.
func NotFoundJSON(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern == "" {
			respond.Error(w, http.StatusNotFound)
			return
		}
		mux.ServeHTTP(w, r)
	})
}
