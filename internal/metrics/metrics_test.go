package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.QuestionCreated()
		m.QuestionDeleted()
		m.QuizStep("all", false)
		m.ObserveRequest("/questions", http.MethodGet, http.StatusOK, time.Millisecond)
	})
}

func TestQuizStepCounters(t *testing.T) {
	m := New()
	m.QuizStep("category", false)
	m.QuizStep("category", false)
	m.QuizStep("category", true)
	m.QuizStep("all", false)

	body := scrape(t, m)
	assert.Contains(t, body, `trivia_quiz_questions_served_total{scope="category"} 2`)
	assert.Contains(t, body, `trivia_quiz_questions_served_total{scope="all"} 1`)
	assert.Contains(t, body, `trivia_quiz_completed_total{scope="category"} 1`)
}

func TestQuizStepClampsUnknownScopes(t *testing.T) {
	m := New()
	for _, scope := range []string{"17", "1500", "", "science"} {
		m.QuizStep(scope, true)
	}

	body := scrape(t, m)
	assert.Contains(t, body, `trivia_quiz_completed_total{scope="category"} 4`)
	assert.Equal(t, 1, strings.Count(body, "trivia_quiz_completed_total{"))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.QuestionCreated()
	m.ObserveRequest("/questions", http.MethodPost, http.StatusCreated, 5*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, "trivia_questions_created_total 1")
	assert.Contains(t, body, `trivia_http_requests_total{method="POST",route="/questions",status="201"} 1`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
