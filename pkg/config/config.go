// Package config loads the YAML configuration of the aggregator, applies defaults
// and validates it. Environment variables in the file are expanded before parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/marlendd/News-Aggregator/pkg/content"
	"github.com/marlendd/News-Aggregator/pkg/domain"
)

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Ingest     IngestConfig     `yaml:"ingest" json:"ingest" jsonschema:"description=Feed ingestion configuration"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article page extraction configuration"`
	AI         AIConfig         `yaml:"ai" json:"ai" jsonschema:"description=AI enrichment endpoint configuration"`

	Categories []CategoryConfig `yaml:"categories" json:"categories" validate:"dive" jsonschema:"description=Category seed, built-in categories if empty"`
	Sources    []SourceConfig   `yaml:"sources" json:"sources" validate:"dive" jsonschema:"description=Source seed, built-in sources if empty"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" validate:"required" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" validate:"min=1s" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" validate:"required" jsonschema:"default=file:aggregator.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" validate:"min=1" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" validate:"min=0" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" validate:"min=0" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// IngestConfig holds ingestion pipeline settings
type IngestConfig struct {
	MaxArticlesPerSource int           `yaml:"max_articles_per_source" json:"max_articles_per_source" validate:"min=1,max=1000" jsonschema:"default=10,description=Feed entries examined per source and run"`
	MinContentLength     int           `yaml:"min_content_length" json:"min_content_length" validate:"min=1" jsonschema:"default=100,description=Articles with shorter body are skipped"`
	ErrorThreshold       int           `yaml:"error_threshold" json:"error_threshold" validate:"min=1" jsonschema:"default=5,description=Consecutive feed failures before a source is disabled"`
	MaxWorkers           int           `yaml:"max_workers" json:"max_workers" validate:"min=1,max=32" jsonschema:"default=1,description=Sources ingested in parallel, 1 means sequential"`
	FeedTimeout          time.Duration `yaml:"feed_timeout" json:"feed_timeout" validate:"min=1s" jsonschema:"default=10s,description=Feed fetch timeout"`
	Schedule             string        `yaml:"schedule" json:"schedule" validate:"required" jsonschema:"default=@every 30m,description=Cron spec or descriptor of periodic ingestion"`
	RunOnStart           *bool         `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=true,description=Run ingestion right after start"`
}

// ExtractionConfig holds article page extraction settings
type ExtractionConfig struct {
	Timeout             time.Duration `yaml:"timeout" json:"timeout" validate:"min=1s" jsonschema:"default=10s,description=Page fetch timeout"`
	UserAgent           string        `yaml:"user_agent" json:"user_agent" validate:"required" jsonschema:"description=User agent for page requests"`
	MaxContentLength    int           `yaml:"max_content_length" json:"max_content_length" validate:"min=100" jsonschema:"default=50000,description=Extracted text is truncated to this many characters"`
	ReadabilityFallback bool          `yaml:"readability_fallback" json:"readability_fallback" jsonschema:"default=false,description=Try readability extraction when selectors find nothing"`
}

// AIConfig holds the OpenAI-compatible endpoint settings
type AIConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable AI categorization and summaries"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" validate:"omitempty,url" jsonschema:"default=http://localhost:1234/v1,description=OpenAI-compatible API base url"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" validate:"required" jsonschema:"default=local-model,description=Model name"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" validate:"min=1s" jsonschema:"default=60s,description=Completion request timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" json:"probe_timeout" validate:"min=100ms" jsonschema:"default=5s,description=Availability probe timeout"`
	Temperature  float64       `yaml:"temperature" json:"temperature" validate:"gte=0,lte=2" jsonschema:"default=0.3,minimum=0,maximum=2,description=Sampling temperature"`
}

// CategoryConfig is a category seed entry
type CategoryConfig struct {
	Name        string `yaml:"name" json:"name" validate:"required" jsonschema:"required,description=Category name"`
	Description string `yaml:"description" json:"description" jsonschema:"description=Category description"`
	Color       string `yaml:"color" json:"color" validate:"omitempty,hexcolor" jsonschema:"description=Display color, #6c757d if empty"`
}

// SourceConfig is a source seed entry
type SourceConfig struct {
	Name        string `yaml:"name" json:"name" validate:"required" jsonschema:"required,description=Source name"`
	RSSURL      string `yaml:"rss_url" json:"rss_url" validate:"required,url" jsonschema:"required,description=RSS or Atom feed url"`
	URL         string `yaml:"url" json:"url" validate:"omitempty,url" jsonschema:"description=Website url"`
	Description string `yaml:"description" json:"description" jsonschema:"description=Source description"`
	Active      *bool  `yaml:"active" json:"active" jsonschema:"default=true,description=Ingest this source"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration, applies defaults and validates the result
func Parse(data []byte) (*Config, error) {
	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Default returns configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:aggregator.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// ingest
	if c.Ingest.MaxArticlesPerSource == 0 {
		c.Ingest.MaxArticlesPerSource = 10
	}
	if c.Ingest.MinContentLength == 0 {
		c.Ingest.MinContentLength = 100
	}
	if c.Ingest.ErrorThreshold == 0 {
		c.Ingest.ErrorThreshold = 5
	}
	if c.Ingest.MaxWorkers == 0 {
		c.Ingest.MaxWorkers = 1
	}
	if c.Ingest.FeedTimeout == 0 {
		c.Ingest.FeedTimeout = 10 * time.Second
	}
	if c.Ingest.Schedule == "" {
		c.Ingest.Schedule = "@every 30m"
	}
	if c.Ingest.RunOnStart == nil {
		c.Ingest.RunOnStart = boolPtr(true)
	}

	// extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 10 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = content.DefaultUserAgent
	}
	if c.Extraction.MaxContentLength == 0 {
		c.Extraction.MaxContentLength = 50000
	}

	// ai
	if c.AI.Endpoint == "" {
		c.AI.Endpoint = "http://localhost:1234/v1"
	}
	if c.AI.Model == "" {
		c.AI.Model = "local-model"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 60 * time.Second
	}
	if c.AI.ProbeTimeout == 0 {
		c.AI.ProbeTimeout = 5 * time.Second
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = 0.3
	}

	// seeds
	if len(c.Categories) == 0 {
		for _, cat := range domain.DefaultCategories() {
			c.Categories = append(c.Categories, CategoryConfig{Name: cat.Name, Description: cat.Description, Color: cat.Color})
		}
	}
	if len(c.Sources) == 0 {
		for _, src := range domain.DefaultSources() {
			c.Sources = append(c.Sources, SourceConfig{Name: src.Name, RSSURL: src.RSSURL, URL: src.WebsiteURL,
				Description: src.Description, Active: boolPtr(src.Active)})
		}
	}
	for i := range c.Sources {
		if c.Sources[i].Active == nil {
			c.Sources[i].Active = boolPtr(true)
		}
	}
}

// validate checks struct tags first, then rules tags can't express
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if _, err := cron.ParseStandard(cfg.Ingest.Schedule); err != nil {
		return fmt.Errorf("invalid ingest.schedule %q: %w", cfg.Ingest.Schedule, err)
	}

	names := map[string]bool{}
	for _, c := range cfg.Categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if names[key] {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		names[key] = true
	}

	urls := map[string]bool{}
	for _, s := range cfg.Sources {
		if urls[s.RSSURL] {
			return fmt.Errorf("duplicate source rss_url %q", s.RSSURL)
		}
		urls[s.RSSURL] = true
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// RunOnStart tells if ingestion runs right after start
func (c *Config) RunOnStart() bool {
	return c.Ingest.RunOnStart == nil || *c.Ingest.RunOnStart
}

// SeedCategories returns the category seed as domain categories
func (c *Config) SeedCategories() []domain.Category {
	res := make([]domain.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		color := cat.Color
		if color == "" {
			color = domain.NeutralColor
		}
		res = append(res, domain.Category{Name: strings.TrimSpace(cat.Name), Description: cat.Description, Color: color})
	}
	return res
}

// SeedSources returns the source seed as domain sources
func (c *Config) SeedSources() []domain.Source {
	res := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		res = append(res, domain.Source{
			Name:        s.Name,
			RSSURL:      s.RSSURL,
			WebsiteURL:  s.URL,
			Description: s.Description,
			Active:      s.Active == nil || *s.Active,
		})
	}
	return res
}

func boolPtr(v bool) *bool { return &v }
