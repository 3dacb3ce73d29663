// Package health tracks per-source feed failures and auto-disables sources failing repeatedly.
// Every mutation re-reads the source and writes only health fields, so concurrent admin edits
// of other fields are never clobbered.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/marlendd/News-Aggregator/pkg/domain"
)

//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore

// DefaultThreshold is the number of consecutive failures disabling a source
const DefaultThreshold = 5

// SourceStore reads sources and persists their health fields (active, error count, last error, last updated)
type SourceStore interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	UpdateSourceHealth(ctx context.Context, src *domain.Source) error
}

// Tracker applies health transitions to stored sources
type Tracker struct {
	store     SourceStore
	threshold int
	now       func() time.Time
}

// NewTracker makes a tracker, non-positive threshold means DefaultThreshold
func NewTracker(store SourceStore, threshold int) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{store: store, threshold: threshold, now: time.Now}
}

// Threshold returns the auto-disable threshold
func (t *Tracker) Threshold() int { return t.threshold }

// RecordFailure counts a feed-level failure. Reaching the threshold deactivates the source.
func (t *Tracker) RecordFailure(ctx context.Context, id int64, cause error) (*domain.Source, error) {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return t.mutate(ctx, id, "record failure", func(src *domain.Source) {
		if Fail(src, msg, t.threshold) {
			lgr.Printf("[WARN] source %q disabled after %d consecutive errors, last: %s", src.Name, src.ErrorCount, msg)
		}
	})
}

// RecordSuccess clears the error state and stamps the update time
func (t *Tracker) RecordSuccess(ctx context.Context, id int64) (*domain.Source, error) {
	return t.mutate(ctx, id, "record success", func(src *domain.Source) {
		Succeed(src, t.now())
	})
}

// Reset clears the error state and activates the source
func (t *Tracker) Reset(ctx context.Context, id int64) (*domain.Source, error) {
	return t.mutate(ctx, id, "reset", func(src *domain.Source) {
		Reset(src)
	})
}

// SetActive activates or deactivates the source, activation clears the error state
func (t *Tracker) SetActive(ctx context.Context, id int64, active bool) (*domain.Source, error) {
	return t.mutate(ctx, id, "set active", func(src *domain.Source) {
		SetActive(src, active)
	})
}

// Toggle flips the active flag, see SetActive
func (t *Tracker) Toggle(ctx context.Context, id int64) (*domain.Source, error) {
	return t.mutate(ctx, id, "toggle", func(src *domain.Source) {
		SetActive(src, !src.Active)
	})
}

// mutate does a fresh read, applies fn and writes health fields back
func (t *Tracker) mutate(ctx context.Context, id int64, op string, fn func(src *domain.Source)) (*domain.Source, error) {
	src, err := t.store.GetSource(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s, get source %d: %w", op, id, err)
	}
	fn(src)
	if err := t.store.UpdateSourceHealth(ctx, src); err != nil {
		return nil, fmt.Errorf("%s, update source %d: %w", op, id, err)
	}
	return src, nil
}

// Fail increments the error count and records the message. Returns true if this failure disabled the source.
func Fail(src *domain.Source, msg string, threshold int) bool {
	src.ErrorCount++
	src.LastError = msg
	if src.ErrorCount >= threshold && src.Active {
		src.Active = false
		return true
	}
	return false
}

// Succeed resets the error state after a completed run
func Succeed(src *domain.Source, at time.Time) {
	src.ErrorCount = 0
	src.LastError = ""
	src.LastUpdated = &at
}

// Reset clears the error state and activates the source
func Reset(src *domain.Source) {
	src.ErrorCount = 0
	src.LastError = ""
	src.Active = true
}

// SetActive sets the active flag, activation clears the error state
func SetActive(src *domain.Source, active bool) {
	src.Active = active
	if active {
		src.ErrorCount = 0
		src.LastError = ""
	}
}
