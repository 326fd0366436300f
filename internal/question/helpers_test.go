package question

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// memDB mimics the sqlc query surface over in-memory tables.
type memDB struct {
	mu         sync.Mutex
	nextID     int64
	questions  []sqlcgen.Question
	categories []sqlcgen.Category
	err        error
}

func newMemDB() *memDB {
	return &memDB{
		nextID: 100,
		categories: []sqlcgen.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
		},
	}
}

func (m *memDB) add(text string, category int64) sqlcgen.Question {
	q, _ := m.InsertQuestion(context.Background(), sqlcgen.InsertQuestionParams{
		Question:   text,
		Answer:     "answer to " + text,
		Category:   category,
		Difficulty: 1,
	})
	return q
}

func (m *memDB) ListQuestions(_ context.Context) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(sqlcgen.Question) bool { return true }), nil
}

func (m *memDB) ListQuestionsByCategory(_ context.Context, category int64) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(q sqlcgen.Question) bool { return q.Category == category }), nil
}

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

func (m *memDB) SearchQuestions(_ context.Context, pattern string) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	needle := strings.ToLower(likeUnescaper.Replace(pattern))
	return m.sorted(func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (m *memDB) CountQuestions(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.questions)), nil
}

func (m *memDB) InsertQuestion(_ context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return sqlcgen.Question{}, m.err
	}
	if !m.hasCategory(arg.Category) {
		return sqlcgen.Question{}, &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "questions_category_fkey"}
	}
	m.nextID++
	q := sqlcgen.Question{
		ID:         m.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *memDB) DeleteQuestion(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memDB) ListCategories(_ context.Context) ([]sqlcgen.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]sqlcgen.Category(nil), m.categories...), nil
}

func (m *memDB) GetCategory(_ context.Context, id int64) (sqlcgen.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return sqlcgen.Category{}, m.err
	}
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return sqlcgen.Category{}, pgx.ErrNoRows
}

func (m *memDB) UpsertCategory(_ context.Context, typ string) (sqlcgen.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return sqlcgen.Category{}, m.err
	}
	for _, c := range m.categories {
		if c.Type == typ {
			return c, nil
		}
	}
	c := sqlcgen.Category{ID: int64(len(m.categories) + 1), Type: typ}
	m.categories = append(m.categories, c)
	return c, nil
}

func (m *memDB) hasCategory(id int64) bool {
	for _, c := range m.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (m *memDB) sorted(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	var out []sqlcgen.Question
	for _, q := range m.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func newTestService(db *memDB) *Service {
	return NewService(
		repository.NewQuestionRepository(db),
		repository.NewCategoryRepository(db),
		ServiceOptions{},
	)
}
