package question

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Permissions checked before mutating the store.
const (
	PermissionCreate = "post:questions"
	PermissionDelete = "delete:questions"
)

// Guard authorizes privileged requests. Allow writes the rejection itself
// and reports false when the request must stop.
type Guard interface {
	Allow(w http.ResponseWriter, r *http.Request, permission string) bool
}

// HTTPHandler exposes the question and category endpoints.
type HTTPHandler struct {
	store Store
	guard Guard
}

// NewHTTPHandler builds the handler; a nil guard leaves writes open.
func NewHTTPHandler(store Store, guard Guard) *HTTPHandler {
	return &HTTPHandler{store: store, guard: guard}
}

type createRequest struct {
	Question   string  `json:"question"`
	Text       string  `json:"text"`
	Answer     string  `json:"answer"`
	Category   FlexInt `json:"category"`
	CategoryID FlexInt `json:"category_id"`
	Difficulty FlexInt `json:"difficulty"`
	SearchTerm *string `json:"searchTerm"`
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// HandleCategories handles GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.internalError(w, r, err, "failed to load categories")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       CategoryMap(categories),
		"total_categories": len(categories),
	})
}

// HandleCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeCategoryNotFound, "Category was not found")
		return
	}

	ctx := r.Context()
	category, err := h.store.Category(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeCategoryNotFound, "Category was not found")
			return
		}
		h.internalError(w, r, err, "failed to load category")
		return
	}

	questions, err := h.store.ListByCategory(ctx, id)
	if err != nil {
		h.internalError(w, r, err, "failed to load questions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        Paginate(ParsePage(r.URL.Query().Get("page")), questions),
		"total_questions":  len(questions),
		"current_category": category.ID,
		"category_type":    category.Type,
	})
}

// HandleQuestions handles GET /questions?page=N and POST /questions.
// A POST carrying searchTerm is treated as a search, as the trivia frontend sends it.
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
			return
		}
		if req.SearchTerm != nil {
			h.search(w, r, *req.SearchTerm)
			return
		}
		h.create(w, r, req)
	default:
		httperrors.RespondMethodNotAllowed(w, "GET, POST")
	}
}

// HandleQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w, http.MethodDelete)
		return
	}

	id, ok := pathID(r)
	if !ok {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Question id must be a positive integer")
		return
	}
	if h.guard != nil && !h.guard.Allow(w, r, PermissionDelete) {
		return
	}

	ctx := r.Context()
	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeQuestionNotFound, "Question was not found")
			return
		}
		h.internalError(w, r, err, "failed to delete question")
		return
	}

	total, err := h.store.Count(ctx)
	if err != nil {
		h.internalError(w, r, err, "failed to count questions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         id,
		"total_questions": total,
	})
}

// HandleSearch handles POST /questions/search and the legacy POST /searchQuestions.
func (h *HTTPHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.SearchTerm == nil {
		httperrors.RespondUnprocessable(w, "searchTerm is required")
		return
	}
	h.search(w, r, *req.SearchTerm)
}

func (h *HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	questions, err := h.store.ListAll(ctx)
	if err != nil {
		h.internalError(w, r, err, "failed to load questions")
		return
	}

	page := Paginate(ParsePage(r.URL.Query().Get("page")), questions)
	if len(page) == 0 && len(questions) > 0 {
		httperrors.RespondNotFound(w, httperrors.ErrCodePageNotFound, "Page is out of range")
		return
	}

	categories, err := h.store.Categories(ctx)
	if err != nil {
		h.internalError(w, r, err, "failed to load categories")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page,
		"total_questions":  len(questions),
		"categories":       CategoryMap(categories),
		"current_category": nil,
	})
}

func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, term string) {
	matches, err := h.store.Search(r.Context(), term)
	if err != nil {
		h.internalError(w, r, err, "failed to search questions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        Paginate(ParsePage(r.URL.Query().Get("page")), matches),
		"total_questions":  len(matches),
		"current_category": nil,
	})
}

func (h *HTTPHandler) create(w http.ResponseWriter, r *http.Request, req createRequest) {
	if h.guard != nil && !h.guard.Allow(w, r, PermissionCreate) {
		return
	}

	in := NewQuestion{
		Text:       req.Question,
		Answer:     req.Answer,
		CategoryID: req.Category.Value,
		Difficulty: int(req.Difficulty.Value),
	}
	if in.Text == "" {
		in.Text = req.Text
	}
	if !req.Category.Set {
		in.CategoryID = req.CategoryID.Value
	}

	ctx := r.Context()
	created, err := h.store.Insert(ctx, in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Error(), verr.Field)
			return
		}
		h.internalError(w, r, err, "failed to create question")
		return
	}

	total, err := h.store.Count(ctx)
	if err != nil {
		h.internalError(w, r, err, "failed to count questions")
		return
	}

	logging.FromContext(ctx).Info().Int64("question_id", created.ID).Msg("question created")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":         true,
		"created":         created.ID,
		"question":        created,
		"total_questions": total,
	})
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(message)
	httperrors.RespondInternalError(w, message)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
