package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/rest"

	"github.com/marlendd/News-Aggregator/pkg/domain"
	"github.com/marlendd/News-Aggregator/pkg/repository"
	"github.com/marlendd/News-Aggregator/pkg/scheduler"
)

// sourceView is a source with its derived health state
type sourceView struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	RSSURL      string             `json:"rss_url"`
	WebsiteURL  string             `json:"website_url,omitempty"`
	Active      bool               `json:"active"`
	ErrorCount  int                `json:"error_count"`
	LastError   string             `json:"last_error,omitempty"`
	LastUpdated *time.Time         `json:"last_updated,omitempty"`
	Health      domain.HealthState `json:"health"`
}

type articleView struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Summary     string               `json:"summary"`
	SourceURL   string               `json:"source_url"`
	ImageURL    string               `json:"image_url,omitempty"`
	PublishedAt time.Time            `json:"published_at"`
	Status      domain.ArticleStatus `json:"status"`
	CategoryID  *int64               `json:"category_id,omitempty"`
	SourceID    *int64               `json:"source_id,omitempty"`
}

// statusHandler returns server status with scheduler activity and article counts
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.CountByStatus(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to count articles: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	RenderJSON(w, r, http.StatusOK, rest.JSON{
		"status":        "ok",
		"version":       s.version,
		"time":          time.Now().UTC(),
		"scheduler":     s.ingester.Status(),
		"articles":      counts,
		"ai_configured": s.ai.IsConfigured(),
	})
}

// aiStatusHandler probes the AI endpoint
func (s *Server) aiStatusHandler(w http.ResponseWriter, r *http.Request) {
	res := rest.JSON{"configured": s.ai.IsConfigured(), "available": false, "models": []string{}}
	if s.ai.IsConfigured() {
		res["available"] = s.ai.IsAvailable(r.Context())
		res["models"] = s.ai.AvailableModels(r.Context())
	}
	RenderJSON(w, r, http.StatusOK, res)
}

// ingestAllHandler starts full ingestion in background
func (s *Server) ingestAllHandler(w http.ResponseWriter, r *http.Request) {
	if s.ingester.Status().Running {
		RenderError(w, r, scheduler.ErrRunInProgress, http.StatusConflict)
		return
	}

	ctx := s.backgroundContext()
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		if _, err := s.ingester.IngestAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[WARN] requested ingestion: %v", err)
		}
	}()

	RenderJSON(w, r, http.StatusAccepted, rest.JSON{"status": "started"})
}

// ingestSourceHandler starts ingestion of a single source in background.
// Unknown and inactive sources are rejected before the start, run stats go to the log
func (s *Server) ingestSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := sourceID(w, r)
	if !ok {
		return
	}

	src, err := s.store.GetSource(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] failed to get source %d: %v", id, err)
		RenderError(w, r, err, errorCode(err))
		return
	}
	if !src.Active {
		err = fmt.Errorf("ingest source %d: %w", id, domain.ErrSourceInactive)
		RenderError(w, r, err, errorCode(err))
		return
	}

	ctx := s.backgroundContext()
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		stats, err := s.ingester.IngestOne(ctx, id)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[WARN] requested ingestion of source %d: %v", id, err)
			}
			return
		}
		log.Printf("[INFO] requested ingestion of source %q: %s", stats.SourceName, stats)
	}()

	RenderJSON(w, r, http.StatusAccepted, rest.JSON{"status": "started", "source_id": id})
}

// listSourcesHandler lists sources, filtered by active, errors and stale query params
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.SourceFilter{
		ActiveOnly: q.Get("active") == "true",
		WithErrors: q.Get("errors") == "true",
	}
	if v := q.Get("stale"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			RenderError(w, r, fmt.Errorf("invalid stale duration %q", v), http.StatusBadRequest)
			return
		}
		filter.StaleBefore = time.Now().Add(-d)
	}

	sources, err := s.store.ListSources(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to list sources: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]sourceView, 0, len(sources))
	for i := range sources {
		res = append(res, s.sourceView(&sources[i]))
	}
	RenderJSON(w, r, http.StatusOK, res)
}

// resetSourceHandler clears source errors and activates it
func (s *Server) resetSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.updateSource(w, r, s.health.Reset)
}

// toggleSourceHandler flips the active flag of the source
func (s *Server) toggleSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.updateSource(w, r, s.health.Toggle)
}

func (s *Server) updateSource(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) (*domain.Source, error)) {
	id, ok := sourceID(w, r)
	if !ok {
		return
	}
	src, err := op(r.Context(), id)
	if err != nil {
		log.Printf("[ERROR] failed to update source %d: %v", id, err)
		RenderError(w, r, err, errorCode(err))
		return
	}
	RenderJSON(w, r, http.StatusOK, s.sourceView(src))
}

// listArticlesHandler lists stored articles, newest first
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ArticleFilter{Status: domain.ArticleStatus(q.Get("status"))}
	if v := q.Get("source"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			RenderError(w, r, errors.New("invalid source ID"), http.StatusBadRequest)
			return
		}
		filter.SourceID = id
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil || limit == 0 {
			RenderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	articles, err := s.store.ListArticles(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to list articles: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]articleView, 0, len(articles))
	for _, a := range articles {
		res = append(res, articleView{
			ID: a.ID, Title: a.Title, Summary: a.Summary, SourceURL: a.SourceURL, ImageURL: a.ImageURL,
			PublishedAt: a.PublishedAt, Status: a.Status, CategoryID: a.CategoryID, SourceID: a.SourceID,
		})
	}
	RenderJSON(w, r, http.StatusOK, res)
}

func (s *Server) sourceView(src *domain.Source) sourceView {
	return sourceView{
		ID:          src.ID,
		Name:        src.Name,
		RSSURL:      src.RSSURL,
		WebsiteURL:  src.WebsiteURL,
		Active:      src.Active,
		ErrorCount:  src.ErrorCount,
		LastError:   src.LastError,
		LastUpdated: src.LastUpdated,
		Health:      src.Health(s.health.Threshold()),
	}
}

func (s *Server) backgroundContext() context.Context {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.baseCtx
}

// sourceID parses the id path value, rendering 400 on failure
func sourceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		RenderError(w, r, errors.New("invalid source ID"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// errorCode maps domain errors to http status codes
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSourceInactive), errors.Is(err, scheduler.ErrRunInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
