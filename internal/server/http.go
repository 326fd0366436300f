package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports dependency health; *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the domain handlers mounted on the mux. Nil entries are skipped.
type Handlers struct {
	Questions *question.HTTPHandler
	Quiz      *quiz.HTTPHandler
}

// NewHTTPServer wires the trivia routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, db Pinger, m *metrics.Metrics, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, logger, db, m, h),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter builds the instrumented handler tree without binding a listener.
func NewRouter(cfg *config.App, logger zerolog.Logger, db Pinger, m *metrics.Metrics, h Handlers) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, m, fn))
	}

	handle("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", m.Handler())

	handle("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "database not configured")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if h.Questions != nil {
		handle("/categories", h.Questions.HandleCategories)
		handle("/categories/{id}/questions", h.Questions.HandleCategoryQuestions)
		handle("/questions", h.Questions.HandleQuestions)
		handle("/questions/{id}", h.Questions.HandleQuestion)
		handle("/questions/search", h.Questions.HandleSearch)
		// Older frontends post searches here.
		handle("/searchQuestions", h.Questions.HandleSearch)
	}

	if h.Quiz != nil {
		handle("/quizzes", h.Quiz.HandleNext)
	}

	handle("/{$}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httperrors.RespondMethodNotAllowed(w, http.MethodGet)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"home"}`))
	})

	handle("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "resource not found")
	})

	var handler http.Handler = mux
	handler = withCORS(cfg.CORS, handler)
	handler = withAccessLog(handler)
	handler = withRequestID(logger, handler)
	return handler
}
