package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

type memoryPool struct {
	questions []question.Question
	err       error
	allCalls  int
	catCalls  int
}

func (p *memoryPool) ListAll(_ context.Context) ([]question.Question, error) {
	p.allCalls++
	if p.err != nil {
		return nil, p.err
	}
	return append([]question.Question(nil), p.questions...), nil
}

func (p *memoryPool) ListByCategory(_ context.Context, categoryID int64) ([]question.Question, error) {
	p.catCalls++
	if p.err != nil {
		return nil, p.err
	}
	var out []question.Question
	for _, q := range p.questions {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func sciencePool() *memoryPool {
	return &memoryPool{questions: []question.Question{
		{ID: 101, Text: "Speed of light?", Answer: "c", CategoryID: 1, Difficulty: 2},
		{ID: 102, Text: "H2O is?", Answer: "Water", CategoryID: 1, Difficulty: 1},
		{ID: 103, Text: "Closest star?", Answer: "The Sun", CategoryID: 1, Difficulty: 1},
		{ID: 201, Text: "Painter of Guernica?", Answer: "Picasso", CategoryID: 2, Difficulty: 3},
	}}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestNextQuestionScienceScenario(t *testing.T) {
	stepper := NewStepper(sciencePool(), seeded(7))
	ctx := context.Background()
	science := CategorySelector{ID: 1}

	first, err := stepper.NextQuestion(ctx, science, nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Contains(t, []int64{101, 102, 103}, first.ID)

	second, err := stepper.NextQuestion(ctx, science, []int64{first.ID})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, []int64{101, 102, 103}, second.ID)

	done, err := stepper.NextQuestion(ctx, science, []int64{101, 102, 103})
	require.NoError(t, err)
	assert.Nil(t, done, "exhausted pool ends the quiz")
}

func TestNextQuestionNeverReturnsExcluded(t *testing.T) {
	stepper := NewStepper(sciencePool(), seeded(1))
	excluded := []int64{101, 103}

	for i := 0; i < 200; i++ {
		q, err := stepper.NextQuestion(context.Background(), CategorySelector{ID: 1}, excluded)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, int64(102), q.ID)
	}
}

func TestNextQuestionExhaustsWithinPoolSize(t *testing.T) {
	pool := sciencePool()
	stepper := NewStepper(pool, seeded(42))
	ctx := context.Background()

	var served []int64
	for step := 0; step <= len(pool.questions); step++ {
		q, err := stepper.NextQuestion(ctx, CategorySelector{ID: AllCategories}, served)
		require.NoError(t, err)
		if q == nil {
			break
		}
		assert.NotContains(t, served, q.ID)
		served = append(served, q.ID)
	}

	assert.ElementsMatch(t, []int64{101, 102, 103, 201}, served)
	q, err := stepper.NextQuestion(ctx, CategorySelector{ID: AllCategories}, served)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuestionSelectorRouting(t *testing.T) {
	pool := sciencePool()
	stepper := NewStepper(pool, seeded(3))

	_, err := stepper.NextQuestion(context.Background(), CategorySelector{ID: AllCategories}, nil)
	require.NoError(t, err)
	_, err = stepper.NextQuestion(context.Background(), CategorySelector{ID: 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, pool.allCalls)
	assert.Equal(t, 1, pool.catCalls)
}

func TestNextQuestionEmptyCategory(t *testing.T) {
	stepper := NewStepper(sciencePool(), seeded(5))

	q, err := stepper.NextQuestion(context.Background(), CategorySelector{ID: 99}, nil)
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuestionIgnoresUnknownExcludedIDs(t *testing.T) {
	stepper := NewStepper(sciencePool(), seeded(9))

	q, err := stepper.NextQuestion(context.Background(), CategorySelector{ID: 2}, []int64{999, 101})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int64(201), q.ID)
}

func TestNextQuestionPropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	stepper := NewStepper(&memoryPool{err: boom}, nil)

	q, err := stepper.NextQuestion(context.Background(), CategorySelector{ID: 1}, nil)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, boom)
}

func TestNextQuestionCoversWholePool(t *testing.T) {
	stepper := NewStepper(sciencePool(), seeded(11))
	seen := map[int64]bool{}

	for i := 0; i < 300; i++ {
		q, err := stepper.NextQuestion(context.Background(), CategorySelector{ID: 1}, nil)
		require.NoError(t, err)
		seen[q.ID] = true
	}
	assert.Len(t, seen, 3, "every candidate is reachable")
}

func TestCategorySelectorLabel(t *testing.T) {
	assert.Equal(t, "all", CategorySelector{ID: AllCategories}.Label())
	assert.Equal(t, "4", CategorySelector{ID: 4}.Label())
}

func TestCategorySelectorScope(t *testing.T) {
	assert.Equal(t, "all", CategorySelector{ID: AllCategories}.Scope())
	assert.Equal(t, "category", CategorySelector{ID: 4}.Scope())
	assert.Equal(t, "category", CategorySelector{ID: 9999}.Scope())
}
