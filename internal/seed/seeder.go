package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

// target is the slice of question.Store the seeder writes through.
type target interface {
	Search(ctx context.Context, term string) ([]question.Question, error)
	Insert(ctx context.Context, q question.NewQuestion) (question.Question, error)
	EnsureCategory(ctx context.Context, typ string) (question.Category, error)
}

// Provider names shipped categories differently; fold them onto the seeded set.
var categoryAliases = map[string]string{
	"science & nature":  "Science",
	"science":           "Science",
	"arts & literature": "Art",
	"art":               "Art",
	"geography":         "Geography",
	"history":           "History",
	"sport & leisure":   "Sports",
	"sports":            "Sports",
	"film & tv":         "Entertainment",
	"music":             "Entertainment",
	"entertainment":     "Entertainment",
}

var difficultyLevels = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// Result summarises one seeding run.
type Result struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type Seeder struct {
	store  target
	logger zerolog.Logger
}

func New(store target, logger zerolog.Logger) *Seeder {
	return &Seeder{
		store:  store,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Run imports up to amount questions from provider. Questions whose text is
// already stored, or that fail validation, are skipped rather than aborting
// the run.
func (s *Seeder) Run(ctx context.Context, provider external.Provider, amount int, difficulty string) (Result, error) {
	if amount <= 0 {
		return Result{}, fmt.Errorf("amount must be positive, got %d", amount)
	}
	fetched, err := provider.Fetch(ctx, amount, difficulty)
	if err != nil {
		return Result{}, fmt.Errorf("fetch from %s: %w", provider.Name(), err)
	}

	res := Result{Fetched: len(fetched)}
	categories := make(map[string]int64)
	for _, q := range fetched {
		log := s.logger.With().Str("source", provider.Name()).Str("question", q.Text).Logger()

		dup, err := s.exists(ctx, q.Text)
		if err != nil {
			return res, err
		}
		if dup {
			res.Skipped++
			continue
		}

		name := CategoryName(q.Category)
		categoryID, ok := categories[name]
		if !ok {
			cat, err := s.store.EnsureCategory(ctx, name)
			if err != nil {
				return res, err
			}
			categoryID = cat.ID
			categories[name] = categoryID
		}

		_, err = s.store.Insert(ctx, question.NewQuestion{
			Text:       q.Text,
			Answer:     q.Answer,
			CategoryID: categoryID,
			Difficulty: Difficulty(q.Difficulty),
		})
		if errors.Is(err, question.ErrValidation) {
			log.Warn().Err(err).Msg("skipping invalid question")
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Inserted++
	}

	s.logger.Info().
		Str("source", provider.Name()).
		Int("fetched", res.Fetched).
		Int("inserted", res.Inserted).
		Int("skipped", res.Skipped).
		Msg("seed complete")
	return res, nil
}

func (s *Seeder) exists(ctx context.Context, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	matches, err := s.store.Search(ctx, text)
	if err != nil {
		return false, fmt.Errorf("lookup existing question: %w", err)
	}
	for _, m := range matches {
		if strings.EqualFold(m.Text, text) {
			return true, nil
		}
	}
	return false, nil
}

// CategoryName maps a provider category onto a stored category type.
// OpenTDB sub-categories ("Entertainment: Film") collapse to their prefix.
func CategoryName(raw string) string {
	name := strings.TrimSpace(raw)
	if prefix, _, ok := strings.Cut(name, ":"); ok {
		name = strings.TrimSpace(prefix)
	}
	if alias, ok := categoryAliases[strings.ToLower(name)]; ok {
		return alias
	}
	return name
}

// Difficulty maps provider labels onto the 1..5 scale; unknown labels land in the middle.
func Difficulty(label string) int {
	if d, ok := difficultyLevels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return d
	}
	return 3
}
