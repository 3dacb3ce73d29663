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

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleRow is the articles table row
type articleRow struct {
	ID             int64         `db:"id"`
	Title          string        `db:"title"`
	Content        string        `db:"content"`
	Summary        string        `db:"summary"`
	RSSDescription string        `db:"rss_description"`
	SourceURL      string        `db:"source_url"`
	ImageURL       string        `db:"image_url"`
	PublishedAt    time.Time     `db:"published_at"`
	Status         string        `db:"status"`
	CategoryID     sql.NullInt64 `db:"category_id"`
	SourceID       sql.NullInt64 `db:"source_id"`
	CreatorID      sql.NullInt64 `db:"creator_id"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

// ArticleFilter narrows ListArticles
type ArticleFilter struct {
	Status   domain.ArticleStatus
	SourceID int64
	Limit    uint64 // 100 if not set
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ArticleExistsByURL checks whether an article with the source url is stored
func (r *ArticleRepository) ArticleExistsByURL(ctx context.Context, sourceURL string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM articles WHERE source_url = ?)", sourceURL); err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return exists, nil
}

// CreateArticle inserts an article. Status defaults to PENDING.
// A stored source url gives domain.ErrDuplicateURL, the unique index is the final dedup guard.
func (r *ArticleRepository) CreateArticle(ctx context.Context, a *domain.Article) error {
	if a.Status == "" {
		a.Status = domain.StatusPending
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now()
	}

	query := `
		INSERT INTO articles (title, content, summary, rss_description, source_url, image_url,
			published_at, status, category_id, source_id, creator_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	return withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, a.Title, a.Content, a.Summary, a.RSSDescription, a.SourceURL,
			a.ImageURL, a.PublishedAt.UTC(), string(a.Status), nullInt64(a.CategoryID), nullInt64(a.SourceID), nullInt64(a.CreatorID))
		if err != nil {
			if isUniqueViolation(err) {
				return &criticalError{err: fmt.Errorf("create article %s: %w", a.SourceURL, domain.ErrDuplicateURL)}
			}
			return classify(fmt.Errorf("create article: %w", err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		a.ID = id
		return nil
	})
}

// GetArticle retrieves an article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var row articleRow
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM articles WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get article %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListArticles returns the newest articles matching the filter
func (r *ArticleRepository) ListArticles(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	if filter.Limit == 0 {
		filter.Limit = 100
	}
	qb := sq.Select("*").From("articles").OrderBy("published_at DESC", "id DESC").Limit(filter.Limit)
	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.SourceID > 0 {
		qb = qb.Where(sq.Eq{"source_id": filter.SourceID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build articles query: %w", err)
	}
	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	res := make([]domain.Article, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res, nil
}

// CountByStatus returns the number of articles per status
func (r *ArticleRepository) CountByStatus(ctx context.Context) (map[domain.ArticleStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT status, COUNT(*) AS cnt FROM articles GROUP BY status"); err != nil {
		return nil, fmt.Errorf("count articles by status: %w", err)
	}
	res := map[domain.ArticleStatus]int{}
	for _, row := range rows {
		res[domain.ArticleStatus(row.Status)] = row.Count
	}
	return res, nil
}

func (a *articleRow) toDomain() *domain.Article {
	return &domain.Article{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		Summary:        a.Summary,
		RSSDescription: a.RSSDescription,
		SourceURL:      a.SourceURL,
		ImageURL:       a.ImageURL,
		PublishedAt:    a.PublishedAt,
		Status:         domain.ArticleStatus(a.Status),
		CategoryID:     int64Ptr(a.CategoryID),
		SourceID:       int64Ptr(a.SourceID),
		CreatorID:      int64Ptr(a.CreatorID),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
