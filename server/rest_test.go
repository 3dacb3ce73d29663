package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlendd/News-Aggregator/pkg/domain"
	"github.com/marlendd/News-Aggregator/pkg/repository"
	"github.com/marlendd/News-Aggregator/pkg/scheduler"
)

func doRequest(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var res T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func TestServer_statusHandler(t *testing.T) {
	d := newTestDeps()
	d.store.CountByStatusFunc = func(ctx context.Context) (map[domain.ArticleStatus]int, error) {
		return map[domain.ArticleStatus]int{domain.StatusPending: 12, domain.StatusPublished: 3}, nil
	}
	d.ingester.StatusFunc = func() scheduler.Status {
		return scheduler.Status{Schedule: "@every 30m", Runs: 2, Totals: domain.RunStats{New: 15}}
	}

	w := doRequest(t, d.server(), "GET", "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Status    string         `json:"status"`
		Version   string         `json:"version"`
		Articles  map[string]int `json:"articles"`
		Scheduler struct {
			Schedule string          `json:"schedule"`
			Runs     int             `json:"runs"`
			Totals   domain.RunStats `json:"totals"`
		} `json:"scheduler"`
		AIConfigured bool `json:"ai_configured"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "test", res.Version)
	assert.Equal(t, 12, res.Articles["PENDING"])
	assert.Equal(t, 3, res.Articles["PUBLISHED"])
	assert.Equal(t, 2, res.Scheduler.Runs)
	assert.Equal(t, 15, res.Scheduler.Totals.New)
	assert.False(t, res.AIConfigured)
}

func TestServer_statusHandlerStoreError(t *testing.T) {
	d := newTestDeps()
	d.store.CountByStatusFunc = func(ctx context.Context) (map[domain.ArticleStatus]int, error) {
		return nil, errors.New("db closed")
	}
	w := doRequest(t, d.server(), "GET", "/api/v1/status")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "db closed", decode[map[string]string](t, w)["error"])
}

func TestServer_aiStatusHandler(t *testing.T) {
	t.Run("not configured, no probe", func(t *testing.T) {
		d := newTestDeps()
		w := doRequest(t, d.server(), "GET", "/api/v1/ai/status")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[map[string]any](t, w)
		assert.Equal(t, false, res["configured"])
		assert.Equal(t, false, res["available"])
		assert.Equal(t, []any{}, res["models"])
		assert.Empty(t, d.ai.IsAvailableCalls())
	})

	t.Run("configured and available", func(t *testing.T) {
		d := newTestDeps()
		d.ai.IsConfiguredFunc = func() bool { return true }
		d.ai.IsAvailableFunc = func(ctx context.Context) bool { return true }
		d.ai.AvailableModelsFunc = func(ctx context.Context) []string { return []string{"qwen2.5-7b", "local-model"} }

		w := doRequest(t, d.server(), "GET", "/api/v1/ai/status")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[map[string]any](t, w)
		assert.Equal(t, true, res["configured"])
		assert.Equal(t, true, res["available"])
		assert.Equal(t, []any{"qwen2.5-7b", "local-model"}, res["models"])
	})
}

func TestServer_ingestAllHandler(t *testing.T) {
	d := newTestDeps()
	called := make(chan struct{})
	d.ingester.IngestAllFunc = func(ctx context.Context) ([]domain.RunStats, error) {
		close(called)
		return []domain.RunStats{{New: 1}}, nil
	}
	srv := d.server()

	w := doRequest(t, srv, "POST", "/api/v1/ingest")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "started", decode[map[string]string](t, w)["status"])

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("ingestion not started")
	}
	srv.bg.Wait()

	d.ingester.StatusFunc = func() scheduler.Status { return scheduler.Status{Running: true} }
	w = doRequest(t, srv, "POST", "/api/v1/ingest")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, scheduler.ErrRunInProgress.Error(), decode[map[string]string](t, w)["error"])
	assert.Len(t, d.ingester.IngestAllCalls(), 1)
}

func TestServer_ingestSourceHandler(t *testing.T) {
	d := newTestDeps()
	d.store.GetSourceFunc = func(ctx context.Context, id int64) (*domain.Source, error) {
		switch id {
		case 1:
			return &domain.Source{ID: 1, Name: "Хабр", Active: true}, nil
		case 2:
			return &domain.Source{ID: 2, Name: "Лента", Active: false}, nil
		default:
			return nil, fmt.Errorf("get source %d: %w", id, domain.ErrNotFound)
		}
	}
	release := make(chan struct{})
	called := make(chan int64, 1)
	d.ingester.IngestOneFunc = func(ctx context.Context, id int64) (domain.RunStats, error) {
		called <- id
		<-release // longer than the request
		return domain.RunStats{RunID: "run-1", SourceID: id, SourceName: "Хабр", Processed: 10, New: 7}, nil
	}
	srv := d.server()

	w := doRequest(t, srv, "POST", "/api/v1/sources/1/ingest")
	require.Equal(t, http.StatusAccepted, w.Code)
	res := decode[map[string]any](t, w)
	assert.Equal(t, "started", res["status"])
	assert.InDelta(t, 1, res["source_id"], 0)

	select {
	case id := <-called:
		assert.Equal(t, int64(1), id)
	case <-time.After(time.Second):
		t.Fatal("ingestion not started")
	}
	close(release)
	srv.bg.Wait()

	w = doRequest(t, srv, "POST", "/api/v1/sources/2/ingest")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], domain.ErrSourceInactive.Error())

	w = doRequest(t, srv, "POST", "/api/v1/sources/99/ingest")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, srv, "POST", "/api/v1/sources/abc/ingest")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	srv.bg.Wait()
	assert.Len(t, d.store.GetSourceCalls(), 3)
	assert.Len(t, d.ingester.IngestOneCalls(), 1, "only the active source is ingested")
}

func TestServer_ingestSourceHandlerStoreError(t *testing.T) {
	d := newTestDeps()
	d.store.GetSourceFunc = func(ctx context.Context, id int64) (*domain.Source, error) {
		return nil, errors.New("database is locked")
	}
	w := doRequest(t, d.server(), "POST", "/api/v1/sources/1/ingest")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, d.ingester.IngestOneCalls())
}

func TestServer_listSourcesHandler(t *testing.T) {
	updated := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := newTestDeps()
	d.store.ListSourcesFunc = func(ctx context.Context, filter repository.SourceFilter) ([]domain.Source, error) {
		return []domain.Source{
			{ID: 1, Name: "Хабр", RSSURL: "https://habr.com/ru/rss/articles/", Active: true, LastUpdated: &updated},
			{ID: 2, Name: "РИА", RSSURL: "https://ria.ru/export/rss2/archive/index.xml", Active: true, ErrorCount: 2, LastError: "timeout"},
			{ID: 3, Name: "Лента", RSSURL: "https://lenta.ru/rss", ErrorCount: 5, LastError: "status 503"},
		}, nil
	}
	srv := d.server()

	w := doRequest(t, srv, "GET", "/api/v1/sources")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[[]sourceView](t, w)
	require.Len(t, res, 3)
	assert.Equal(t, domain.HealthHealthy, res[0].Health)
	assert.Equal(t, domain.HealthDegraded, res[1].Health)
	assert.Equal(t, domain.HealthDisabled, res[2].Health)
	assert.Equal(t, "status 503", res[2].LastError)
	require.NotNil(t, res[0].LastUpdated)
	assert.True(t, updated.Equal(*res[0].LastUpdated))

	assert.Equal(t, repository.SourceFilter{}, d.store.ListSourcesCalls()[0].Filter)

	before := time.Now()
	w = doRequest(t, srv, "GET", "/api/v1/sources?active=true&errors=true&stale=2h")
	require.Equal(t, http.StatusOK, w.Code)
	filter := d.store.ListSourcesCalls()[1].Filter
	assert.True(t, filter.ActiveOnly)
	assert.True(t, filter.WithErrors)
	assert.WithinDuration(t, before.Add(-2*time.Hour), filter.StaleBefore, time.Second)

	w = doRequest(t, srv, "GET", "/api/v1/sources?stale=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, d.store.ListSourcesCalls(), 2)
}

func TestServer_sourceAdminHandlers(t *testing.T) {
	d := newTestDeps()
	d.health.ResetFunc = func(ctx context.Context, id int64) (*domain.Source, error) {
		if id != 3 {
			return nil, fmt.Errorf("reset, get source %d: %w", id, domain.ErrNotFound)
		}
		return &domain.Source{ID: 3, Name: "Лента", Active: true}, nil
	}
	d.health.ToggleFunc = func(ctx context.Context, id int64) (*domain.Source, error) {
		return &domain.Source{ID: id, Name: "Газета", Active: false, ErrorCount: 1}, nil
	}
	srv := d.server()

	w := doRequest(t, srv, "POST", "/api/v1/sources/3/reset")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[sourceView](t, w)
	assert.True(t, res.Active)
	assert.Equal(t, domain.HealthHealthy, res.Health)

	w = doRequest(t, srv, "POST", "/api/v1/sources/4/reset")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, srv, "POST", "/api/v1/sources/4/toggle")
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[sourceView](t, w)
	assert.False(t, res.Active)
	assert.Equal(t, domain.HealthDegraded, res.Health)

	w = doRequest(t, srv, "POST", "/api/v1/sources/0/toggle")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, d.health.ToggleCalls(), 1)
}

func TestServer_listArticlesHandler(t *testing.T) {
	srcID := int64(2)
	d := newTestDeps()
	d.store.ListArticlesFunc = func(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
		return []domain.Article{{ID: 10, Title: "Новость", Summary: "Кратко.", SourceURL: "https://ria.ru/1",
			Status: domain.StatusPending, SourceID: &srcID, Content: "full body"}}, nil
	}
	srv := d.server()

	w := doRequest(t, srv, "GET", "/api/v1/articles?status=PENDING&source=2&limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[[]map[string]any](t, w)
	require.Len(t, res, 1)
	assert.Equal(t, "Новость", res[0]["title"])
	assert.Equal(t, "PENDING", res[0]["status"])
	assert.NotContains(t, res[0], "content", "body is not listed")

	filter := d.store.ListArticlesCalls()[0].Filter
	assert.Equal(t, repository.ArticleFilter{Status: domain.StatusPending, SourceID: 2, Limit: 5}, filter)

	for _, q := range []string{"source=x", "limit=0", "limit=-1"} {
		w = doRequest(t, srv, "GET", "/api/v1/articles?"+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	assert.Len(t, d.store.ListArticlesCalls(), 1)
}
