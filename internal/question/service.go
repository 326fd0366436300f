package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

// Store is the question store access contract consumed by the HTTP layer,
// the quiz stepper and the seeder.
type Store interface {
	ListAll(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	Insert(ctx context.Context, q NewQuestion) (Question, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Categories(ctx context.Context) ([]Category, error)
	Category(ctx context.Context, id int64) (Category, error)
	EnsureCategory(ctx context.Context, typ string) (Category, error)
}

type recorder interface {
	QuestionCreated()
	QuestionDeleted()
}

type noopRecorder struct{}

func (noopRecorder) QuestionCreated() {}
func (noopRecorder) QuestionDeleted() {}

// Service implements Store over the Postgres repositories.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	metrics    recorder
	logger     zerolog.Logger
}

var _ Store = (*Service)(nil)

type ServiceOptions struct {
	Metrics recorder
	Logger  zerolog.Logger
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions) *Service {
	if opts.Metrics == nil {
		opts.Metrics = noopRecorder{}
	}
	return &Service{
		questions:  questions,
		categories: categories,
		metrics:    opts.Metrics,
		logger:     opts.Logger.With().Str("component", "question_store").Logger(),
	}
}

func (s *Service) ListAll(ctx context.Context) ([]Question, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return toDomainList(rows), nil
}

// ListByCategory returns an empty slice for unknown categories.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list questions of category %d: %w", categoryID, err)
	}
	return toDomainList(rows), nil
}

func (s *Service) Search(ctx context.Context, term string) ([]Question, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomainList(rows), nil
}

// Insert validates q, persists it and returns the stored record.
func (s *Service) Insert(ctx context.Context, q NewQuestion) (Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	q.Answer = strings.TrimSpace(q.Answer)
	if err := Validate(q); err != nil {
		return Question{}, err
	}

	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   q.Text,
		Answer:     q.Answer,
		Category:   q.CategoryID,
		Difficulty: int32(q.Difficulty),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Question{}, &ValidationError{Field: "category", Reason: fmt.Sprintf("%d does not exist", q.CategoryID)}
		}
		return Question{}, fmt.Errorf("insert question: %w", err)
	}

	s.metrics.QuestionCreated()
	s.logger.Debug().Int64("question_id", row.ID).Int64("category", row.Category).Msg("question created")
	return toDomain(row), nil
}

// Delete removes the question or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.questions.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	s.metrics.QuestionDeleted()
	s.logger.Debug().Int64("question_id", id).Msg("question deleted")
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.questions.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: row.ID, Type: row.Type})
	}
	return out, nil
}

func (s *Service) Category(ctx context.Context, id int64) (Category, error) {
	row, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return Category{ID: row.ID, Type: row.Type}, nil
}

// EnsureCategory returns the category named typ, creating it when missing.
func (s *Service) EnsureCategory(ctx context.Context, typ string) (Category, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return Category{}, &ValidationError{Field: "type", Reason: "is required"}
	}
	row, err := s.categories.Ensure(ctx, typ)
	if err != nil {
		return Category{}, fmt.Errorf("ensure category %q: %w", typ, err)
	}
	return Category{ID: row.ID, Type: row.Type}, nil
}

// Validate checks the insert invariants without touching the store.
func Validate(q NewQuestion) error {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return &ValidationError{Field: "question", Reason: "is required"}
	case strings.TrimSpace(q.Answer) == "":
		return &ValidationError{Field: "answer", Reason: "is required"}
	case q.CategoryID <= 0:
		return &ValidationError{Field: "category", Reason: "must be a positive id"}
	case q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty:
		return &ValidationError{Field: "difficulty", Reason: fmt.Sprintf("must be between %d and %d", MinDifficulty, MaxDifficulty)}
	}
	return nil
}

// CategoryMap renders categories as the {"id": "type"} object the frontend expects.
func CategoryMap(categories []Category) map[string]string {
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[fmt.Sprint(c.ID)] = c.Type
	}
	return out
}

func toDomain(row sqlcgen.Question) Question {
	return Question{
		ID:         row.ID,
		Text:       row.Question,
		Answer:     row.Answer,
		CategoryID: row.Category,
		Difficulty: int(row.Difficulty),
	}
}

func toDomainList(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}
