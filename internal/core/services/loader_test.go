package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// fakeSource serves records from memory. Directories map to their entries.
type fakeSource struct {
	dirs    map[string][]string
	records map[string]string
}

func (f *fakeSource) Expand(location string) ([]string, error) {
	if entries, ok := f.dirs[location]; ok {
		return entries, nil
	}
	if _, ok := f.records[location]; ok {
		return []string{location}, nil
	}
	return nil, errors.New("no such file")
}

func (f *fakeSource) Read(_ context.Context, location string) (*domain.RawRecord, error) {
	content, ok := f.records[location]
	if !ok {
		return nil, errors.New("permission denied")
	}
	return &domain.RawRecord{URI: location, Content: []byte(content)}, nil
}

func TestLoadService_Load(t *testing.T) {
	src := &fakeSource{
		dirs: map[string][]string{
			"dir":   {"dir/a.xml", "dir/locked.xml", "dir/b.xml"},
			"empty": nil,
		},
		records: map[string]string{
			"dir/a.xml": "a",
			"dir/b.xml": "b",
			"c.xml":     "c",
		},
	}
	svc := NewLoadService(src, nil)

	raws, failed, err := svc.Load(context.Background(), []string{"c.xml", "dir", "empty"})

	require.NoError(t, err)
	require.Len(t, raws, 3)
	assert.Equal(t, "c.xml", raws[0].URI)
	assert.Equal(t, "dir/a.xml", raws[1].URI)
	assert.Equal(t, "dir/b.xml", raws[2].URI)
	require.Len(t, failed, 1)
	assert.Equal(t, "dir/locked.xml", failed[0].URI)
}

func TestLoadService_MissingLocation(t *testing.T) {
	svc := NewLoadService(&fakeSource{}, nil)

	_, _, err := svc.Load(context.Background(), []string{"nope.xml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading nope.xml")
}

func TestLoadService_NoLocations(t *testing.T) {
	svc := NewLoadService(&fakeSource{}, nil)

	_, _, err := svc.Load(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewLoadService(&fakeSource{records: map[string]string{"a.xml": "a"}}, nil)

	_, _, err := svc.Load(ctx, []string{"a.xml"})

	assert.ErrorIs(t, err, context.Canceled)
}

// fakeWatcher emits changes sent on events.
type fakeWatcher struct {
	events chan string
	err    error
}

func (f *fakeWatcher) Watch(ctx context.Context, _ []string) (<-chan string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p := <-f.events:
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func TestLoadService_Watch(t *testing.T) {
	src := &fakeSource{records: map[string]string{"a.xml": "a", "b.xml": "b"}}
	w := &fakeWatcher{events: make(chan string)}
	svc := NewLoadService(src, w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type batch struct {
		raws   []domain.RawRecord
		failed []*domain.RecordError
	}
	batches := make(chan batch, 1)
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, []string{"."}, 100*time.Millisecond, func(raws []domain.RawRecord, failed []*domain.RecordError) {
			batches <- batch{raws, failed}
		})
	}()

	w.events <- "a.xml"
	w.events <- "b.xml"
	w.events <- "a.xml"
	w.events <- "gone.xml"

	select {
	case b := <-batches:
		require.Len(t, b.raws, 2)
		assert.Equal(t, "a.xml", b.raws[0].URI)
		assert.Equal(t, "b.xml", b.raws[1].URI)
		require.Len(t, b.failed, 1)
		assert.Equal(t, "gone.xml", b.failed[0].URI)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for batch")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestLoadService_WatchErrors(t *testing.T) {
	noop := func([]domain.RawRecord, []*domain.RecordError) {}

	err := NewLoadService(&fakeSource{}, nil).Watch(context.Background(), nil, 0, noop)
	assert.ErrorIs(t, err, ErrNoWatcher)

	failing := &fakeWatcher{err: errors.New("too many open files")}
	err = NewLoadService(&fakeSource{}, failing).Watch(context.Background(), nil, 0, noop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching: too many open files")
}
