package repository

import (
	"context"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int64) (sqlcgen.Category, error)
	UpsertCategory(ctx context.Context, type_ string) (sqlcgen.Category, error)
}

// CategoryRepository exposes typed DB operations for categories.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]sqlcgen.Category, error) {
	return r.store.ListCategories(ctx)
}

// Get fetches one category; pgx.ErrNoRows when absent.
func (r *CategoryRepository) Get(ctx context.Context, id int64) (sqlcgen.Category, error) {
	return r.store.GetCategory(ctx, id)
}

// Ensure returns the category named typ, creating it first if needed.
func (r *CategoryRepository) Ensure(ctx context.Context, typ string) (sqlcgen.Category, error) {
	return r.store.UpsertCategory(ctx, typ)
}
