package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/marlendd/News-Aggregator/pkg/domain"
)

// SourceRepository handles source-related database operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceRow is the sources table row
type sourceRow struct {
	ID          int64        `db:"id"`
	Name        string       `db:"name"`
	RSSURL      string       `db:"rss_url"`
	WebsiteURL  string       `db:"website_url"`
	Description string       `db:"description"`
	Active      bool         `db:"active"`
	ErrorCount  int          `db:"error_count"`
	LastError   string       `db:"last_error"`
	LastUpdated sql.NullTime `db:"last_updated"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// SourceFilter narrows ListSources, zero value lists everything
type SourceFilter struct {
	ActiveOnly  bool
	WithErrors  bool      // error_count > 0
	StaleBefore time.Time // active sources never updated or last updated before this time
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// CreateSource inserts a new source, a known rss url gives domain.ErrDuplicateURL
func (r *SourceRepository) CreateSource(ctx context.Context, src *domain.Source) error {
	query := `
		INSERT INTO sources (name, rss_url, website_url, description, active)
		VALUES (?, ?, ?, ?, ?)
	`
	return withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, src.Name, src.RSSURL, src.WebsiteURL, src.Description, src.Active)
		if err != nil {
			if isUniqueViolation(err) {
				return &criticalError{err: fmt.Errorf("create source %s: %w", src.RSSURL, domain.ErrDuplicateURL)}
			}
			return classify(fmt.Errorf("create source: %w", err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		src.ID = id
		return nil
	})
}

// GetSource retrieves a source by ID
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	var row sourceRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM sources WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get source %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get source %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// GetSourceByURL retrieves a source by its feed url
func (r *SourceRepository) GetSourceByURL(ctx context.Context, rssURL string) (*domain.Source, error) {
	var row sourceRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM sources WHERE rss_url = ?", rssURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get source %s: %w", rssURL, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get source %s: %w", rssURL, err)
	}
	return row.toDomain(), nil
}

// ListSources returns sources matching the filter ordered by id
func (r *SourceRepository) ListSources(ctx context.Context, filter SourceFilter) ([]domain.Source, error) {
	qb := sq.Select("*").From("sources").OrderBy("id")
	if filter.ActiveOnly {
		qb = qb.Where(sq.Eq{"active": true})
	}
	if filter.WithErrors {
		qb = qb.Where(sq.Gt{"error_count": 0})
	}
	if !filter.StaleBefore.IsZero() {
		qb = qb.Where(sq.Eq{"active": true}).
			Where(sq.Or{sq.Eq{"last_updated": nil}, sq.Lt{"last_updated": filter.StaleBefore.UTC()}})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sources query: %w", err)
	}

	var rows []sourceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	res := make([]domain.Source, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res, nil
}

// ActiveSources returns sources eligible for ingestion
func (r *SourceRepository) ActiveSources(ctx context.Context) ([]domain.Source, error) {
	return r.ListSources(ctx, SourceFilter{ActiveOnly: true})
}

// UpdateSource updates the editable fields of a source, health fields are left as is
func (r *SourceRepository) UpdateSource(ctx context.Context, src *domain.Source) error {
	query := `
		UPDATE sources
		SET name = ?, rss_url = ?, website_url = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	return withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, src.Name, src.RSSURL, src.WebsiteURL, src.Description, src.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return &criticalError{err: fmt.Errorf("update source %d: %w", src.ID, domain.ErrDuplicateURL)}
			}
			return classify(fmt.Errorf("update source %d: %w", src.ID, err))
		}
		if err := checkAffected(result, fmt.Sprintf("update source %d", src.ID)); err != nil {
			return &criticalError{err: err}
		}
		return nil
	})
}

// UpdateSourceHealth writes active flag, error count, last error and last updated time
func (r *SourceRepository) UpdateSourceHealth(ctx context.Context, src *domain.Source) error {
	query := `
		UPDATE sources
		SET active = ?, error_count = ?, last_error = ?, last_updated = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	return withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, src.Active, src.ErrorCount, src.LastError, nullTime(src.LastUpdated), src.ID)
		if err != nil {
			return classify(fmt.Errorf("update source health %d: %w", src.ID, err))
		}
		if err := checkAffected(result, fmt.Sprintf("update source health %d", src.ID)); err != nil {
			return &criticalError{err: err}
		}
		return nil
	})
}

// DeleteSource removes a source, its articles keep existing without a source reference
func (r *SourceRepository) DeleteSource(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete source %d: %w", id, err)
	}
	return checkAffected(result, fmt.Sprintf("delete source %d", id))
}

// SeedSources inserts sources with unknown rss urls and returns the number inserted
func (r *SourceRepository) SeedSources(ctx context.Context, sources []domain.Source) (int, error) {
	inserted := 0
	for i := range sources {
		src := sources[i]
		if err := r.CreateSource(ctx, &src); err != nil {
			if errors.Is(err, domain.ErrDuplicateURL) {
				continue
			}
			return inserted, fmt.Errorf("seed source %q: %w", src.Name, err)
		}
		inserted++
	}
	return inserted, nil
}

// checkAffected returns domain.ErrNotFound if nothing was changed
func checkAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s, rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (s *sourceRow) toDomain() *domain.Source {
	return &domain.Source{
		ID:          s.ID,
		Name:        s.Name,
		RSSURL:      s.RSSURL,
		WebsiteURL:  s.WebsiteURL,
		Description: s.Description,
		Active:      s.Active,
		ErrorCount:  s.ErrorCount,
		LastError:   s.LastError,
		LastUpdated: timePtr(s.LastUpdated),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
