package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

type recorder interface {
	QuizStep(scope string, exhausted bool)
}

// HTTPHandler serves POST /quizzes.
type HTTPHandler struct {
	stepper *Stepper
	metrics recorder
}

func NewHTTPHandler(stepper *Stepper, metrics recorder) *HTTPHandler {
	return &HTTPHandler{stepper: stepper, metrics: metrics}
}

type quizRequest struct {
	PreviousQuestions []int64 `json:"previous_questions"`
	QuizCategory      *struct {
		ID   question.FlexInt `json:"id"`
		Type string           `json:"type"`
	} `json:"quiz_category"`
}

// HandleNext handles POST /quizzes. A missing quiz_category plays all categories.
func (h *HTTPHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	selector := CategorySelector{ID: AllCategories}
	if req.QuizCategory != nil {
		selector.ID = req.QuizCategory.ID.Value
	}
	if selector.ID < 0 {
		httperrors.RespondUnprocessable(w, "quiz_category.id must not be negative")
		return
	}

	ctx := r.Context()
	next, err := h.stepper.NextQuestion(ctx, selector, req.PreviousQuestions)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("category", selector.Label()).Msg("quiz step failed")
		httperrors.RespondInternalError(w, "failed to pick a question")
		return
	}

	if h.metrics != nil {
		h.metrics.QuizStep(selector.Scope(), next == nil)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"question": next,
	}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
