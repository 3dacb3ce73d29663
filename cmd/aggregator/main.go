package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/marlendd/News-Aggregator/pkg/config"
	"github.com/marlendd/News-Aggregator/pkg/content"
	"github.com/marlendd/News-Aggregator/pkg/domain"
	"github.com/marlendd/News-Aggregator/pkg/feed"
	"github.com/marlendd/News-Aggregator/pkg/health"
	"github.com/marlendd/News-Aggregator/pkg/llm"
	"github.com/marlendd/News-Aggregator/pkg/repository"
	"github.com/marlendd/News-Aggregator/pkg/scheduler"
	"github.com/marlendd/News-Aggregator/server"
)

const defaultConfig = "aggregator.yml"

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"aggregator.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"file with environment variables"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB      string `long:"db" env:"DB" description:"database dsn, overrides config"`

	Once   bool  `long:"once" description:"ingest all active sources once and exit"`
	Source int64 `long:"source" description:"ingest a single source by id and exit"`

	Dbg     bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
	Version bool `short:"V" long:"version" description:"show version info"`
}

var revision = "unknown"

func main() {
	var opts Opts
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	p.SubcommandsOptional = true
	if _, err := p.Parse(); err != nil {
		if !errors.Is(err.(*flags.Error).Type, flags.ErrHelp) {
			fmt.Printf("%v", err)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if err := godotenv.Load(opts.EnvFile); err != nil && !os.IsNotExist(err) {
		fmt.Printf("failed to load env file %s: %v\n", opts.EnvFile, err)
		os.Exit(1)
	}

	setupLog(opts.Dbg, opts.NoColor)
	log.Printf("[INFO] starting news-aggregator version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.AI.APIKey != "" {
		setupLog(opts.Dbg, opts.NoColor, cfg.AI.APIKey) // hide the key from logs
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if err := seed(ctx, repos, cfg); err != nil {
		return err
	}

	tracker := health.NewTracker(repos.Source, cfg.Ingest.ErrorThreshold)
	ai := llm.NewClient(llm.Config{
		Enabled:      cfg.AI.Enabled,
		Endpoint:     cfg.AI.Endpoint,
		APIKey:       cfg.AI.APIKey,
		Model:        cfg.AI.Model,
		Timeout:      cfg.AI.Timeout,
		ProbeTimeout: cfg.AI.ProbeTimeout,
		Temperature:  cfg.AI.Temperature,
	})

	procCfg := scheduler.ProcessorConfig{
		Sources:    repos.Source,
		Articles:   repos.Article,
		Categories: repos.Category,
		Parser:     feed.NewParser(cfg.Ingest.FeedTimeout, cfg.Extraction.UserAgent),
		Extractor: content.NewExtractor(content.Options{
			Timeout:          cfg.Extraction.Timeout,
			UserAgent:        cfg.Extraction.UserAgent,
			MaxContentLength: cfg.Extraction.MaxContentLength,
			Readability:      cfg.Extraction.ReadabilityFallback,
		}),
		Health:           tracker,
		MaxArticles:      cfg.Ingest.MaxArticlesPerSource,
		MinContentLength: cfg.Ingest.MinContentLength,
		MaxWorkers:       cfg.Ingest.MaxWorkers,
		SeedCategories:   cfg.SeedCategories(),
	}
	if ai.IsConfigured() {
		procCfg.Enricher = ai
	} else {
		log.Printf("[INFO] ai enrichment is not configured, keyword categories and lead summaries")
	}
	processor := scheduler.NewProcessor(procCfg)

	switch {
	case opts.Source > 0:
		stats, err := processor.IngestOne(ctx, opts.Source)
		if err != nil {
			return fmt.Errorf("failed to ingest source %d: %w", opts.Source, err)
		}
		log.Printf("[INFO] source %q: %s", stats.SourceName, stats)
		return nil
	case opts.Once:
		return ingestOnce(ctx, processor)
	}

	sched := scheduler.NewScheduler(processor, scheduler.Config{
		Schedule:   cfg.Ingest.Schedule,
		RunOnStart: cfg.RunOnStart(),
	})
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:   cfg,
		Store:    store{SourceRepository: repos.Source, ArticleRepository: repos.Article},
		Ingester: sched,
		Health:   tracker,
		AI:       ai,
		Version:  revision,
		Debug:    opts.Dbg,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file, overrides it with cli options.
// Missing default config file means built-in defaults
func loadConfig(opts Opts) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	switch {
	case err == nil:
	case opts.Config == defaultConfig && errors.Is(err, os.ErrNotExist):
		log.Printf("[INFO] config %s not found, using defaults", opts.Config)
		cfg = config.Default()
	default:
		return nil, err
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	return cfg, nil
}

// seed inserts configured categories and sources missing in the database
func seed(ctx context.Context, repos *repository.Repositories, cfg *config.Config) error {
	cats, err := repos.Category.SeedCategories(ctx, cfg.SeedCategories())
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	sources, err := repos.Source.SeedSources(ctx, cfg.SeedSources())
	if err != nil {
		return fmt.Errorf("failed to seed sources: %w", err)
	}
	if cats > 0 || sources > 0 {
		log.Printf("[INFO] seeded %d categories and %d sources", cats, sources)
	}
	return nil
}

func ingestOnce(ctx context.Context, processor *scheduler.Processor) error {
	results, err := processor.IngestAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to ingest sources: %w", err)
	}
	var total domain.RunStats
	failed := 0
	for _, r := range results {
		total.Add(r)
		if r.Failed {
			failed++
		}
	}
	log.Printf("[INFO] ingested %d sources, %d failed: %s", len(results), failed, total)
	return ctx.Err()
}

// store joins source and article repositories for the http server
type store struct {
	*repository.SourceRepository
	*repository.ArticleRepository
}

func setupLog(dbg, noColor bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var nonEmpty []string
	for _, s := range secrets {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
