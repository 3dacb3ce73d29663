package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marlendd/News-Aggregator/pkg/content"
	"github.com/marlendd/News-Aggregator/pkg/domain"
	"github.com/marlendd/News-Aggregator/pkg/llm"
	"github.com/marlendd/News-Aggregator/pkg/sanitize"
)

//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/category_store.go -pkg mocks -skip-ensure -fmt goimports . CategoryStore
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/enricher.go -pkg mocks -skip-ensure -fmt goimports . Enricher
//go:generate moq -out mocks/health_tracker.go -pkg mocks -skip-ensure -fmt goimports . HealthTracker

// SourceStore provides sources to ingest
type SourceStore interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	ActiveSources(ctx context.Context) ([]domain.Source, error)
}

// ArticleStore is the persistence sink for finished articles.
// CreateArticle returns domain.ErrDuplicateURL when the source url is already stored.
type ArticleStore interface {
	ArticleExistsByURL(ctx context.Context, sourceURL string) (bool, error)
	CreateArticle(ctx context.Context, a *domain.Article) error
}

// CategoryStore resolves category names to stored categories
type CategoryStore interface {
	FindOrCreateCategory(ctx context.Context, tmpl domain.Category) (*domain.Category, error)
}

// Parser fetches and parses feeds
type Parser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Extractor fetches article pages and derives body text and image
type Extractor interface {
	Extract(ctx context.Context, url string) (*content.Result, error)
}

// Enricher classifies and summarizes articles, implementations never fail
type Enricher interface {
	Categorize(ctx context.Context, title, body string) string
	Summarize(ctx context.Context, body string) string
}

// HealthTracker records feed-level outcomes of a source
type HealthTracker interface {
	RecordFailure(ctx context.Context, id int64, cause error) (*domain.Source, error)
	RecordSuccess(ctx context.Context, id int64) (*domain.Source, error)
}

// entry outcomes counted in run stats
type outcome int

const (
	outcomeNew outcome = iota
	outcomeDuplicate
	outcomeSkipped
	outcomeError
)

// Processor ingests sources: fetches feeds, dedups entries, extracts content and images,
// enriches and stores new articles at PENDING status, and reports feed-level health.
// Entry-level failures are counted in RunStats and never fail the source.
type Processor struct {
	sources    SourceStore
	articles   ArticleStore
	categories CategoryStore
	parser     Parser
	extractor  Extractor
	enricher   Enricher
	health     HealthTracker
	images     content.ImageResolver
	fallback   llm.Fallback

	maxArticles int
	minContent  int
	maxWorkers  int
	seed        map[string]domain.Category
	now         func() time.Time
}

// ProcessorConfig holds dependencies and limits of Processor
type ProcessorConfig struct {
	Sources          SourceStore
	Articles         ArticleStore
	Categories       CategoryStore
	Parser           Parser
	Extractor        Extractor
	Enricher         Enricher // llm.Fallback if not set
	Health           HealthTracker
	MaxArticles      int               // entries examined per source, 10 if not set
	MinContentLength int               // shorter bodies are skipped, 100 if not set
	MaxWorkers       int               // sources ingested in parallel by IngestAll, 1 if not set
	SeedCategories   []domain.Category // description and color for categories created on the fly
}

// NewProcessor creates a new processor with the provided configuration
func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = 10
	}
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = 100
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	if cfg.Enricher == nil {
		cfg.Enricher = llm.Fallback{}
	}
	seed := make(map[string]domain.Category, len(cfg.SeedCategories))
	for _, c := range cfg.SeedCategories {
		seed[c.Name] = c
	}

	return &Processor{
		sources:     cfg.Sources,
		articles:    cfg.Articles,
		categories:  cfg.Categories,
		parser:      cfg.Parser,
		extractor:   cfg.Extractor,
		enricher:    cfg.Enricher,
		health:      cfg.Health,
		maxArticles: cfg.MaxArticles,
		minContent:  cfg.MinContentLength,
		maxWorkers:  cfg.MaxWorkers,
		seed:        seed,
		now:         time.Now,
	}
}

// IngestOne ingests a single source by id. Errors are returned only for unknown or inactive sources
// and for a canceled context, feed and entry failures are reported in the stats.
func (p *Processor) IngestOne(ctx context.Context, id int64) (domain.RunStats, error) {
	src, err := p.sources.GetSource(ctx, id)
	if err != nil {
		return domain.RunStats{}, fmt.Errorf("get source %d: %w", id, err)
	}
	if !src.Active {
		return domain.RunStats{}, fmt.Errorf("ingest source %d: %w", id, domain.ErrSourceInactive)
	}
	stats := p.ProcessSource(ctx, *src)
	return stats, ctx.Err()
}

// IngestAll ingests every active source and returns per-source stats in source order.
// A failing source never affects the others.
func (p *Processor) IngestAll(ctx context.Context) ([]domain.RunStats, error) {
	sources, err := p.sources.ActiveSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active sources: %w", err)
	}
	lgr.Printf("[INFO] ingesting %d active sources", len(sources))

	res := make([]domain.RunStats, len(sources))
	if p.maxWorkers == 1 {
		for i, src := range sources {
			if ctx.Err() != nil {
				break
			}
			res[i] = p.ProcessSource(ctx, src)
		}
		return res, ctx.Err()
	}

	var g errgroup.Group
	g.SetLimit(p.maxWorkers)
	for i, src := range sources {
		g.Go(func() error {
			if ctx.Err() == nil {
				res[i] = p.ProcessSource(ctx, src)
			}
			return nil
		})
	}
	_ = g.Wait()
	return res, ctx.Err()
}

// ProcessSource fetches the source feed and ingests up to maxArticles entries in feed order.
// A completed loop resets source health even if every entry failed, a feed fetch or parse failure counts against it.
func (p *Processor) ProcessSource(ctx context.Context, src domain.Source) (stats domain.RunStats) {
	stats = domain.RunStats{RunID: uuid.NewString(), SourceID: src.ID, SourceName: src.Name, StartedAt: p.now()}
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] run %s, source %q panicked: %v", stats.RunID, src.Name, r)
			p.recordFailure(ctx, src, &stats, fmt.Errorf("panic: %v", r))
		}
		stats.FinishedAt = p.now()
	}()

	lgr.Printf("[DEBUG] run %s, fetching %q from %s", stats.RunID, src.Name, src.RSSURL)
	parsed, err := p.parser.Parse(ctx, src.RSSURL)
	if err != nil {
		if ctx.Err() != nil {
			stats.Error = ctx.Err().Error()
			return stats
		}
		lgr.Printf("[WARN] run %s, can't fetch source %q: %v", stats.RunID, src.Name, err)
		p.recordFailure(ctx, src, &stats, err)
		return stats
	}

	stats.Total = len(parsed.Items)
	for i := range parsed.Items {
		if stats.Processed >= p.maxArticles {
			lgr.Printf("[DEBUG] run %s, limit of %d entries reached for %q", stats.RunID, p.maxArticles, src.Name)
			break
		}
		if ctx.Err() != nil {
			stats.Error = ctx.Err().Error()
			return stats
		}
		stats.Processed++
		switch p.processEntry(ctx, src, parsed.Items[i]) {
		case outcomeNew:
			stats.New++
		case outcomeDuplicate:
			stats.Duplicates++
		case outcomeSkipped:
			stats.Skipped++
		case outcomeError:
			stats.Errors++
		}
	}

	if _, err := p.health.RecordSuccess(ctx, src.ID); err != nil {
		lgr.Printf("[WARN] run %s, can't record success of %q: %v", stats.RunID, src.Name, err)
	}
	lgr.Printf("[INFO] run %s, source %q: %s", stats.RunID, src.Name, stats)
	return stats
}

func (p *Processor) recordFailure(ctx context.Context, src domain.Source, stats *domain.RunStats, cause error) {
	stats.Failed = true
	stats.Error = cause.Error()
	if _, err := p.health.RecordFailure(ctx, src.ID, cause); err != nil {
		lgr.Printf("[WARN] run %s, can't record failure of %q: %v", stats.RunID, src.Name, err)
	}
}

// processEntry turns one feed entry into a stored article
func (p *Processor) processEntry(ctx context.Context, src domain.Source, item domain.ParsedItem) (res outcome) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[WARN] entry %q of %q panicked: %v", item.Link, src.Name, r)
			res = outcomeError
		}
	}()

	link := strings.TrimSpace(item.Link)
	if link == "" {
		lgr.Printf("[DEBUG] entry %q of %q has no link, skipped", item.Title, src.Name)
		return outcomeSkipped
	}

	exists, err := p.articles.ArticleExistsByURL(ctx, link)
	if err != nil {
		lgr.Printf("[WARN] can't check entry %s of %q: %v", link, src.Name, err)
		return outcomeError
	}
	if exists {
		return outcomeDuplicate
	}

	title := sanitize.Clean(item.Title)
	description := sanitize.Clean(item.Description)

	page, err := p.extractor.Extract(ctx, link)
	if err != nil {
		lgr.Printf("[DEBUG] can't extract %s, using feed description: %v", link, err)
		page = nil
	}

	body := description
	if page != nil && page.Text != "" {
		body = page.Text
	}
	if n := utf8.RuneCountInString(body); n < p.minContent {
		lgr.Printf("[DEBUG] entry %q of %q has too short content (%d chars), skipped", title, src.Name, n)
		return outcomeSkipped
	}

	image := p.images.FromEntry(item)
	if image == "" && page != nil {
		image = page.Image
	}

	published := item.Published
	if published.IsZero() {
		published = p.now()
	}

	categoryName, summary := p.enrich(ctx, title, body)

	article := &domain.Article{
		Title:          title,
		Content:        body,
		Summary:        summary,
		RSSDescription: description,
		SourceURL:      link,
		ImageURL:       image,
		PublishedAt:    published,
		Status:         domain.StatusPending,
		SourceID:       &src.ID,
	}
	if cat := p.category(ctx, categoryName); cat != nil {
		article.CategoryID = &cat.ID
	}

	if err := p.articles.CreateArticle(ctx, article); err != nil {
		if errors.Is(err, domain.ErrDuplicateURL) {
			lgr.Printf("[DEBUG] entry %s of %q stored concurrently, duplicate", link, src.Name)
			return outcomeDuplicate
		}
		lgr.Printf("[WARN] can't store entry %s of %q: %v", link, src.Name, err)
		return outcomeError
	}
	lgr.Printf("[DEBUG] stored article %d %q, category %q", article.ID, title, categoryName)
	return outcomeNew
}

// enrich runs the enricher, a panicking enricher is replaced by the deterministic fallback
func (p *Processor) enrich(ctx context.Context, title, body string) (category, summary string) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[DEBUG] enrichment of %q failed with %v, using fallback", title, r)
			category = p.fallback.Categorize(ctx, title, body)
			summary = p.fallback.Summarize(ctx, body)
		}
	}()
	summary = p.enricher.Summarize(ctx, body)
	category = p.enricher.Categorize(ctx, title, body)
	return category, summary
}

// category finds or creates the named category, seed entries provide description and color
func (p *Processor) category(ctx context.Context, name string) *domain.Category {
	if name == "" {
		return nil
	}
	tmpl, ok := p.seed[name]
	if !ok {
		tmpl = domain.Category{Name: name, Color: domain.NeutralColor}
	}
	cat, err := p.categories.FindOrCreateCategory(ctx, tmpl)
	if err != nil {
		lgr.Printf("[WARN] can't resolve category %q: %v", name, err)
		return nil
	}
	return cat
}
