package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/marlendd/News-Aggregator/pkg/domain"
)

//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester

// ErrRunInProgress is returned when a full ingestion is requested while another one is running
var ErrRunInProgress = errors.New("ingestion already in progress")

// Ingester runs ingestion of one or all sources, implemented by Processor
type Ingester interface {
	IngestOne(ctx context.Context, id int64) (domain.RunStats, error)
	IngestAll(ctx context.Context) ([]domain.RunStats, error)
}

// Config holds scheduler configuration
type Config struct {
	Schedule   string // cron spec or descriptor, "@every 30m" if not set
	RunOnStart bool   // run full ingestion right after Start
}

// Status is a snapshot of scheduler activity
type Status struct {
	Schedule string          `json:"schedule"`
	Running  bool            `json:"running"`
	Runs     int             `json:"runs"`
	LastRun  time.Time       `json:"last_run,omitempty"`
	NextRun  time.Time       `json:"next_run,omitempty"`
	Totals   domain.RunStats `json:"totals"`
}

// Scheduler triggers full ingestion on a cron schedule. Full runs never overlap,
// a tick arriving while a run is in progress is skipped.
type Scheduler struct {
	ingester   Ingester
	schedule   string
	runOnStart bool
	cron       *cron.Cron
	entryID    cron.EntryID

	runMu sync.Mutex // held for the duration of a full run

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	runs    int
	lastRun time.Time
	totals  domain.RunStats
}

// NewScheduler creates a new scheduler instance
func NewScheduler(ingester Ingester, cfg Config) *Scheduler {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 30m"
	}
	return &Scheduler{
		ingester:   ingester,
		schedule:   cfg.Schedule,
		runOnStart: cfg.RunOnStart,
		cron:       cron.New(),
	}
}

// Start registers the periodic job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	id, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.IngestAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
			lgr.Printf("[WARN] scheduled ingestion: %v", err)
		}
	})
	if err != nil {
		cancel()
		return fmt.Errorf("add schedule %q: %w", s.schedule, err)
	}

	s.mu.Lock()
	s.cancel = cancel
	s.entryID = id
	s.mu.Unlock()

	s.cron.Start()
	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if _, err := s.IngestAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
				lgr.Printf("[WARN] initial ingestion: %v", err)
			}
		}()
	}
	lgr.Printf("[INFO] scheduler started with schedule %q, run on start %v", s.schedule, s.runOnStart)
	return nil
}

// Stop cancels the running ingestion and waits for scheduled jobs to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	<-s.cron.Stop().Done()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// IngestAll runs full ingestion unless another full run is in progress
func (s *Scheduler) IngestAll(ctx context.Context) ([]domain.RunStats, error) {
	if !s.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.runMu.Unlock()

	s.setRunning(true)
	defer s.setRunning(false)

	stats, err := s.ingester.IngestAll(ctx)

	var total domain.RunStats
	for _, st := range stats {
		total.Add(st)
	}
	s.mu.Lock()
	s.runs++
	s.lastRun = time.Now()
	s.totals.Add(total)
	s.mu.Unlock()

	lgr.Printf("[INFO] ingestion of %d sources completed, %s", len(stats), total)
	return stats, err
}

// IngestOne ingests a single source, it may run next to a full ingestion
func (s *Scheduler) IngestOne(ctx context.Context, id int64) (domain.RunStats, error) {
	return s.ingester.IngestOne(ctx, id)
}

// Status returns a snapshot of scheduler activity
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := Status{Schedule: s.schedule, Running: s.running, Runs: s.runs, LastRun: s.lastRun, Totals: s.totals}
	if s.entryID != 0 {
		res.NextRun = s.cron.Entry(s.entryID).Next
	}
	return res
}

func (s *Scheduler) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}
