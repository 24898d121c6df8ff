package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
	"github.com/custodia-labs/marcfields/internal/logger"
)

// Ensure LoadService implements the interfaces.
var (
	_ driving.RecordLoader  = (*LoadService)(nil)
	_ driving.RecordWatcher = (*LoadService)(nil)
)

// ErrNoWatcher is returned by Watch when no watcher was configured.
var ErrNoWatcher = errors.New("no record watcher configured")

// defaultDebounce batches editor save bursts into one run.
const defaultDebounce = 500 * time.Millisecond

// LoadService expands locations and reads their records.
type LoadService struct {
	source  driven.RecordSource
	watcher driven.RecordWatcher
}

// NewLoadService creates a loader over source. watcher may be nil.
func NewLoadService(source driven.RecordSource, watcher driven.RecordWatcher) *LoadService {
	return &LoadService{source: source, watcher: watcher}
}

// Load reads the records under locations.
func (s *LoadService) Load(
	ctx context.Context,
	locations []string,
) ([]domain.RawRecord, []*domain.RecordError, error) {
	if len(locations) == 0 {
		return nil, nil, fmt.Errorf("%w: no records given", domain.ErrInvalidInput)
	}

	var (
		raws   []domain.RawRecord
		failed []*domain.RecordError
	)
	for _, loc := range locations {
		paths, err := s.source.Expand(loc)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", loc, err)
		}
		if len(paths) == 0 {
			logger.Warn("no record files in %s", loc)
		}
		r, f := s.read(ctx, paths)
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		raws = append(raws, r...)
		failed = append(failed, f...)
	}
	logger.Debug("loaded %d records, %d unreadable", len(raws), len(failed))
	return raws, failed, nil
}

func (s *LoadService) read(ctx context.Context, paths []string) ([]domain.RawRecord, []*domain.RecordError) {
	var (
		raws   []domain.RawRecord
		failed []*domain.RecordError
	)
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		raw, err := s.source.Read(ctx, p)
		if err != nil {
			failed = append(failed, &domain.RecordError{URI: p, Err: err})
			continue
		}
		raws = append(raws, *raw)
	}
	return raws, failed
}

// Watch calls fn with the records that changed under locations.
// It returns nil once ctx is cancelled.
func (s *LoadService) Watch(
	ctx context.Context,
	locations []string,
	debounce time.Duration,
	fn driving.RecordBatchFunc,
) error {
	if s.watcher == nil {
		return ErrNoWatcher
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	changes, err := s.watcher.Watch(ctx, locations)
	if err != nil {
		return fmt.Errorf("watching: %w", err)
	}
	logger.Info("watching %d locations", len(locations))

	var (
		order   []string
		pending = map[string]bool{}
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher stopped")
			}
			if !pending[path] {
				pending[path] = true
				order = append(order, path)
			}
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			raws, failed := s.read(ctx, order)
			logger.Debug("%d changed records", len(order))
			order = nil
			pending = map[string]bool{}
			fn(raws, failed)
		}
	}
}
