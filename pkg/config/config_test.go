package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlendd/News-Aggregator/pkg/content"
	"github.com/marlendd/News-Aggregator/pkg/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aggregator.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_AI_KEY", "secret-key")
		path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
ingest:
  max_articles_per_source: 20
  max_workers: 4
  schedule: "*/15 * * * *"
  run_on_start: false
ai:
  enabled: true
  endpoint: http://lmstudio:1234/v1
  api_key: ${TEST_AI_KEY}
  model: qwen2.5-7b-instruct
categories:
  - name: Технологии
    color: "#007bff"
  - name: Авто
sources:
  - name: Хабр
    rss_url: https://habr.com/ru/rss/articles/
    url: https://habr.com
  - name: Лента
    rss_url: https://lenta.ru/rss
    active: false
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 20, cfg.Ingest.MaxArticlesPerSource)
		assert.Equal(t, 4, cfg.Ingest.MaxWorkers)
		assert.Equal(t, "*/15 * * * *", cfg.Ingest.Schedule)
		assert.False(t, cfg.RunOnStart())
		assert.True(t, cfg.AI.Enabled)
		assert.Equal(t, "secret-key", cfg.AI.APIKey, "env expanded")
		assert.Equal(t, "qwen2.5-7b-instruct", cfg.AI.Model)

		cats := cfg.SeedCategories()
		require.Len(t, cats, 2)
		assert.Equal(t, "#007bff", cats[0].Color)
		assert.Equal(t, domain.NeutralColor, cats[1].Color)

		sources := cfg.SeedSources()
		require.Len(t, sources, 2)
		assert.True(t, sources[0].Active)
		assert.Equal(t, "https://habr.com", sources[0].WebsiteURL)
		assert.False(t, sources[1].Active)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:aggregator.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Ingest.MaxArticlesPerSource)
		assert.Equal(t, 100, cfg.Ingest.MinContentLength)
		assert.Equal(t, 5, cfg.Ingest.ErrorThreshold)
		assert.Equal(t, 1, cfg.Ingest.MaxWorkers)
		assert.Equal(t, 10*time.Second, cfg.Ingest.FeedTimeout)
		assert.Equal(t, "@every 30m", cfg.Ingest.Schedule)
		assert.True(t, cfg.RunOnStart())
		assert.Equal(t, content.DefaultUserAgent, cfg.Extraction.UserAgent)
		assert.Equal(t, 50000, cfg.Extraction.MaxContentLength)
		assert.False(t, cfg.AI.Enabled)
		assert.Equal(t, "http://localhost:1234/v1", cfg.AI.Endpoint)
		assert.Equal(t, "local-model", cfg.AI.Model)
		assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
		assert.Equal(t, 5*time.Second, cfg.AI.ProbeTimeout)
		assert.InEpsilon(t, 0.3, cfg.AI.Temperature, 0.0001)
		assert.Len(t, cfg.SeedCategories(), 10)
		assert.Equal(t, domain.DefaultSources(), cfg.SeedSources())
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "invalid yaml content\n  with bad indentation\n    and no structure\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{name: "short server timeout", body: "server:\n  timeout: 10ms\n", errMsg: "Config.Server.Timeout"},
		{name: "too many workers", body: "ingest:\n  max_workers: 100\n", errMsg: "Config.Ingest.MaxWorkers"},
		{name: "bad temperature", body: "ai:\n  temperature: 3.5\n", errMsg: "Config.AI.Temperature"},
		{name: "bad endpoint", body: "ai:\n  endpoint: not a url\n", errMsg: "Config.AI.Endpoint"},
		{name: "bad color", body: "categories:\n  - name: X\n    color: red\n", errMsg: "Config.Categories[0].Color"},
		{name: "source without url", body: "sources:\n  - name: X\n", errMsg: "Config.Sources[0].RSSURL"},
		{name: "bad schedule", body: "ingest:\n  schedule: every tuesday\n", errMsg: "invalid ingest.schedule"},
		{name: "duplicate category", body: "categories:\n  - name: Спорт\n  - name: спорт\n", errMsg: "duplicate category"},
		{name: "duplicate source", body: "sources:\n  - name: A\n    rss_url: https://a.ru/rss\n  - name: B\n    rss_url: https://a.ru/rss\n",
			errMsg: "duplicate source rss_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validate config")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":8080", listen)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	for _, key := range []string{"max_articles_per_source", "error_threshold", "probe_timeout", "rss_url", "@every 30m"} {
		assert.Contains(t, string(data), key)
	}

	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, WriteSchema(path))
	written, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.True(t, json.Valid(written))
}
