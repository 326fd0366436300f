package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// AllCategories is the selector id the frontend sends for "all".
const AllCategories int64 = 0

// CategorySelector picks the candidate pool: ID == AllCategories means
// every question, anything else a single category.
type CategorySelector struct {
	ID int64
}

func (s CategorySelector) All() bool {
	return s.ID == AllCategories
}

// Scope is the bounded metric label: "all" or "category". Category ids
// come from clients and never become label values.
func (s CategorySelector) Scope() string {
	if s.All() {
		return "all"
	}
	return "category"
}

// Label identifies the selector in logs and errors.
func (s CategorySelector) Label() string {
	if s.All() {
		return "all"
	}
	return strconv.FormatInt(s.ID, 10)
}

type pool interface {
	ListAll(ctx context.Context) ([]question.Question, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]question.Question, error)
}

// Stepper hands out one unseen question per call. It keeps no session
// state; the caller supplies every id served so far.
type Stepper struct {
	store pool

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStepper seeds selection from the clock when rng is nil.
func NewStepper(store pool, rng *rand.Rand) *Stepper {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Stepper{store: store, rng: rng}
}

// NextQuestion returns a uniformly random question from the selected pool
// whose id is not in excluded, or nil once the pool is exhausted.
func (s *Stepper) NextQuestion(ctx context.Context, selector CategorySelector, excluded []int64) (*question.Question, error) {
	var (
		candidates []question.Question
		err        error
	)
	if selector.All() {
		candidates, err = s.store.ListAll(ctx)
	} else {
		candidates, err = s.store.ListByCategory(ctx, selector.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz pool %s: %w", selector.Label(), err)
	}

	remaining := exclude(candidates, excluded)
	if len(remaining) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	pick := remaining[s.rng.IntN(len(remaining))]
	s.mu.Unlock()
	return &pick, nil
}

func exclude(candidates []question.Question, excluded []int64) []question.Question {
	if len(excluded) == 0 {
		return candidates
	}
	seen := make(map[int64]struct{}, len(excluded))
	for _, id := range excluded {
		seen[id] = struct{}{}
	}
	out := make([]question.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, skip := seen[q.ID]; !skip {
			out = append(out, q)
		}
	}
	return out
}
