package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
	"github.com/custodia-labs/marcfields/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.RecordWriter = (*Writer)(nil)

var (
	// ErrRateLimited is returned when Solr answers 429 Too Many Requests.
	ErrRateLimited = errors.New("solr rate limit exceeded")

	// ErrUpdateFailed is returned for any other non-2xx update response.
	ErrUpdateFailed = errors.New("solr update failed")
)

// Reserved document fields set alongside the extracted ones.
const (
	IDField    = "id"
	BatchField = "rec.batchId"
	URIField   = "rec.uri"
)

const (
	defaultBatchSize = 100
	defaultTimeout   = 30 * time.Second
)

// Config configures a Writer.
type Config struct {
	// URL is the Solr base URL, e.g. http://localhost:8983/solr.
	URL string

	// Collection is the target core or collection.
	Collection string

	// RequestsPerSecond and Burst bound the update request rate.
	RequestsPerSecond float64
	Burst             int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// CommitWithin asks Solr to commit within this duration; zero leaves
	// commits to the server's autoCommit settings.
	CommitWithin time.Duration

	// BatchSize is how many records are buffered before posting.
	BatchSize int
}

// Writer buffers records and posts them to Solr as JSON documents.
type Writer struct {
	client       *http.Client
	updateURL    string
	commitWithin time.Duration
	batchSize    int
	limiter      *RateLimiter

	mu      sync.Mutex
	pending []map[string]any
}

// NewWriter creates a Solr writer.
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.URL == "" || cfg.Collection == "" {
		return nil, fmt.Errorf("%w: solr url and collection are required", domain.ErrInvalidInput)
	}
	base, err := url.Parse(cfg.URL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: solr url %q", domain.ErrInvalidInput, cfg.URL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &Writer{
		client:       &http.Client{Timeout: cfg.Timeout},
		updateURL:    base.JoinPath(cfg.Collection, "update").String(),
		commitWithin: cfg.CommitWithin,
		batchSize:    cfg.BatchSize,
		limiter:      NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// WriteRecord buffers a record, posting the buffer once it is full.
func (w *Writer) WriteRecord(ctx context.Context, rec *domain.IndexedRecord) error {
	if rec == nil || rec.ID == "" {
		return domain.ErrInvalidInput
	}

	w.mu.Lock()
	w.pending = append(w.pending, Document(rec))
	var batch []map[string]any
	if len(w.pending) >= w.batchSize {
		batch = w.pending
		w.pending = nil
	}
	w.mu.Unlock()

	if batch == nil {
		return nil
	}
	return w.post(ctx, batch)
}

// Flush posts any buffered records.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	batch := w.pending
	w.pending = nil
	w.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	return w.post(ctx, batch)
}

// Commit issues an explicit hard commit.
func (w *Writer) Commit(ctx context.Context) error {
	return w.send(ctx, map[string]any{"commit": map[string]any{}}, false)
}

// Pending returns how many records are buffered.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Document converts a record to a Solr document. Every extracted field
// becomes a multi-valued field of the same name.
func Document(rec *domain.IndexedRecord) map[string]any {
	doc := make(map[string]any, len(rec.Fields)+3)
	for _, f := range rec.Fields {
		if len(f.Values) == 0 {
			continue
		}
		doc[f.Name] = f.Values
	}
	doc[IDField] = rec.ID
	if rec.BatchID != "" {
		doc[BatchField] = rec.BatchID
	}
	if rec.URI != "" {
		doc[URIField] = rec.URI
	}
	return doc
}

// post sends a batch. A failure is reported for every document in it, so
// records buffered by earlier writes are not lost silently.
func (w *Writer) post(ctx context.Context, docs []map[string]any) error {
	logger.Debug("solr: posting %d documents", len(docs))
	if err := w.send(ctx, docs, true); err != nil {
		ids := make([]string, 0, len(docs))
		for _, doc := range docs {
			if id, ok := doc[IDField].(string); ok {
				ids = append(ids, id)
			}
		}
		return &domain.BatchWriteError{IDs: ids, Err: err}
	}
	return nil
}

func (w *Writer) send(ctx context.Context, payload any, withCommitWithin bool) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding update: %w", err)
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	u := w.updateURL + "?wt=json"
	if withCommitWithin && w.commitWithin > 0 {
		u += "&commitWithin=" + strconv.FormatInt(w.commitWithin.Milliseconds(), 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting update: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		w.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		return ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", ErrUpdateFailed, resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
