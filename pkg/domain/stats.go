package domain

import (
	"fmt"
	"time"
)

// RunStats aggregates the outcome of ingesting one source
type RunStats struct {
	RunID      string    `json:"run_id"`
	SourceID   int64     `json:"source_id,omitempty"`
	SourceName string    `json:"source_name,omitempty"`
	Total      int       `json:"total"`      // entries in the feed document
	Processed  int       `json:"processed"`  // entries examined, never above the per-source cap
	New        int       `json:"new"`
	Duplicates int       `json:"duplicates"`
	Skipped    int       `json:"skipped"`    // content below the length floor
	Errors     int       `json:"errors"`     // entry-level failures
	Failed     bool      `json:"failed"`
	Error      string    `json:"error,omitempty"` // feed-level failure message
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Add accumulates counters of another run into s
func (s *RunStats) Add(other RunStats) {
	s.Total += other.Total
	s.Processed += other.Processed
	s.New += other.New
	s.Duplicates += other.Duplicates
	s.Skipped += other.Skipped
	s.Errors += other.Errors
}

func (s RunStats) String() string {
	return fmt.Sprintf("processed %d of %d, new %d, duplicates %d, skipped %d, errors %d",
		s.Processed, s.Total, s.New, s.Duplicates, s.Skipped, s.Errors)
}
