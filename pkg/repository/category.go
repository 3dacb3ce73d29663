package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/marlendd/News-Aggregator/pkg/domain"
)

// CategoryRepository handles category-related database operations
type CategoryRepository struct {
	db *sqlx.DB
}

// categoryRow is the categories table row
type categoryRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Color       string    `db:"color"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategoryByName retrieves a category by its exact name
func (r *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var row categoryRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM categories WHERE name = ?", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get category %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return row.toDomain(), nil
}

// FindOrCreateCategory returns the category named like tmpl, creating it from tmpl if missing.
// Concurrent callers get the same row.
func (r *CategoryRepository) FindOrCreateCategory(ctx context.Context, tmpl domain.Category) (*domain.Category, error) {
	name := strings.TrimSpace(tmpl.Name)
	if name == "" {
		return nil, errors.New("find or create category: empty name")
	}
	if tmpl.Color == "" {
		tmpl.Color = domain.NeutralColor
	}

	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO categories (name, description, color) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING",
			name, tmpl.Description, tmpl.Color)
		return classify(err)
	})
	if err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	return r.GetCategoryByName(ctx, name)
}

// ListCategories returns all categories ordered by name
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM categories ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	res := make([]domain.Category, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res, nil
}

// SeedCategories inserts missing categories and returns the number inserted, existing ones are kept as is
func (r *CategoryRepository) SeedCategories(ctx context.Context, categories []domain.Category) (int, error) {
	inserted := 0
	for _, c := range categories {
		if _, err := r.GetCategoryByName(ctx, c.Name); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return inserted, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		if _, err := r.FindOrCreateCategory(ctx, c); err != nil {
			return inserted, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		inserted++
	}
	return inserted, nil
}

func (c *categoryRow) toDomain() *domain.Category {
	return &domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
	}
}
