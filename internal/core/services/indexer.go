package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
	"github.com/custodia-labs/marcfields/internal/extractor"
	"github.com/custodia-labs/marcfields/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// ErrNoWriter is returned by IndexAll when no record writer is configured.
var ErrNoWriter = errors.New("no record writer configured")

// recordIDField holds the "record:agency" identifier of danMARC2 records.
const recordIDField = "marc.001a001b"

// IndexService parses records, extracts their fields and hands them on.
type IndexService struct {
	parser    driven.RecordParser
	extractor *extractor.Extractor
	writer    driven.RecordWriter
	workers   int
}

// IndexOption configures an IndexService.
type IndexOption func(*IndexService)

// WithWriter sets the writer IndexAll sends records to.
func WithWriter(w driven.RecordWriter) IndexOption {
	return func(s *IndexService) {
		s.writer = w
	}
}

// WithWorkers sets how many records IndexAll extracts at once.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) IndexOption {
	return func(s *IndexService) {
		s.workers = n
	}
}

// NewIndexService creates a new index service.
func NewIndexService(
	parser driven.RecordParser,
	ext *extractor.Extractor,
	opts ...IndexOption,
) *IndexService {
	s := &IndexService{
		parser:    parser,
		extractor: ext,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	return s
}

// Extract parses a record and returns its fields without emitting them.
func (s *IndexService) Extract(_ context.Context, raw *domain.RawRecord) (*domain.IndexedRecord, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := checkMIMEType(raw.MIMEType); err != nil {
		return nil, err
	}

	root, err := s.parser.Parse(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}

	res, err := s.extractor.Extract(root)
	if err != nil {
		return nil, err
	}

	return &domain.IndexedRecord{
		ID:     recordID(raw, res.Fields),
		URI:    raw.URI,
		Format: res.Format,
		Fields: res.Fields,
	}, nil
}

// Index extracts a record and pushes every field value to sink.
func (s *IndexService) Index(ctx context.Context, raw *domain.RawRecord, sink domain.FieldSink) error {
	if sink == nil {
		return domain.ErrInvalidInput
	}
	rec, err := s.Extract(ctx, raw)
	if err != nil {
		return err
	}
	extractor.Emit(rec.Fields, sink)
	return nil
}

// Inspect extracts a record and returns its fields as a JSON object.
func (s *IndexService) Inspect(ctx context.Context, raw *domain.RawRecord) ([]byte, error) {
	rec, err := s.Extract(ctx, raw)
	if err != nil {
		return nil, err
	}
	return extractor.MarshalFields(rec.Fields)
}

// IndexAll extracts records concurrently and writes each to the configured writer.
func (s *IndexService) IndexAll(ctx context.Context, raws []domain.RawRecord) (*domain.IndexReport, error) {
	if s.writer == nil {
		return nil, ErrNoWriter
	}

	report := &domain.IndexReport{BatchID: uuid.NewString()}
	logger.Section("Indexing batch " + report.BatchID)

	// One slot per input keeps failures in input order.
	failures := make([]*domain.RecordError, len(raws))
	written := make([]string, len(raws))
	jobs := make(chan int)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		batchErrs []*domain.BatchWriteError
	)
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				id, err := s.indexOne(ctx, &raws[i], report.BatchID)
				if err != nil {
					logger.Warn("skipping %s: %v", raws[i].URI, err)
					failures[i] = &domain.RecordError{URI: raws[i].URI, Err: err}
				} else {
					written[i] = id
				}
				var batchErr *domain.BatchWriteError
				if errors.As(err, &batchErr) {
					mu.Lock()
					batchErrs = append(batchErrs, batchErr)
					mu.Unlock()
				}
			}
		}()
	}

	var cancelled error
feed:
	for i := range raws {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		s.finishReport(report, raws, written, failures, batchErrs)
		return report, cancelled
	}

	var flushErr error
	if err := s.writer.Flush(ctx); err != nil {
		var batchErr *domain.BatchWriteError
		if errors.As(err, &batchErr) {
			logger.Warn("flushing writer: %v", err)
			batchErrs = append(batchErrs, batchErr)
		} else {
			flushErr = fmt.Errorf("flushing writer: %w", err)
		}
	}

	s.finishReport(report, raws, written, failures, batchErrs)
	if flushErr != nil {
		return report, flushErr
	}

	logger.Info("Indexed %d records, %d failed", report.Indexed, len(report.Failed))
	return report, nil
}

// finishReport fails every record a failed batch write carried, then
// counts what was written and lists failures in input order.
func (s *IndexService) finishReport(
	report *domain.IndexReport,
	raws []domain.RawRecord,
	written []string,
	failures []*domain.RecordError,
	batchErrs []*domain.BatchWriteError,
) {
	if len(batchErrs) > 0 {
		byID := make(map[string][]int)
		for i, id := range written {
			if id != "" {
				byID[id] = append(byID[id], i)
			}
		}
		for _, be := range batchErrs {
			for _, id := range be.IDs {
				for _, i := range byID[id] {
					if failures[i] == nil {
						failures[i] = &domain.RecordError{URI: raws[i].URI, Err: be}
					}
				}
			}
		}
	}

	for i, f := range failures {
		if f != nil {
			report.Failed = append(report.Failed, f)
			continue
		}
		if written[i] != "" {
			report.Indexed++
		}
	}
}

// indexOne extracts and writes one record, returning its ID.
func (s *IndexService) indexOne(ctx context.Context, raw *domain.RawRecord, batchID string) (string, error) {
	rec, err := s.Extract(ctx, raw)
	if err != nil {
		return "", err
	}
	rec.BatchID = batchID
	logger.Debug("record %s: %d fields, %d values", rec.ID, len(rec.Fields), rec.Fields.Len())
	if err := s.writer.WriteRecord(ctx, rec); err != nil {
		return rec.ID, fmt.Errorf("writing record %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// checkMIMEType accepts MARCXchange and generic XML content types.
func checkMIMEType(mimeType string) error {
	if mimeType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
	switch mediaType {
	case domain.MIMEMarcxchange, domain.MIMEXML, domain.MIMETextXML:
		return nil
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
}

// recordID picks the record's own identifier, the caller's, or a fresh one.
func recordID(raw *domain.RawRecord, fs domain.Fields) string {
	if ids := fs.Get(recordIDField); len(ids) > 0 {
		return ids[0]
	}
	if raw.ID != "" {
		return raw.ID
	}
	return uuid.NewString()
}
