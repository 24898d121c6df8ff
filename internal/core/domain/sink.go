package domain

import "fmt"

// FieldSink receives output fields one value at a time.
// It has no failure mode visible to extraction; a sink that can fail
// must record the failure itself.
type FieldSink interface {
	AddField(name, value string)
}

// FieldSinkFunc adapts a function to a FieldSink.
type FieldSinkFunc func(name, value string)

// AddField calls f(name, value).
func (f FieldSinkFunc) AddField(name, value string) {
	f(name, value)
}

// RecordError reports a record that failed extraction in a batch.
type RecordError struct {
	// URI identifies the failed record.
	URI string

	// Err is the extraction or write failure.
	Err error
}

// Error implements error.
func (e *RecordError) Error() string {
	return e.URI + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// BatchWriteError reports a write that failed for every record of a
// buffered batch, not only the record whose write triggered it.
type BatchWriteError struct {
	// IDs are the records the failed write carried.
	IDs []string

	// Err is the backend failure.
	Err error
}

// Error implements error.
func (e *BatchWriteError) Error() string {
	return fmt.Sprintf("batch of %d records: %v", len(e.IDs), e.Err)
}

// Unwrap returns the underlying error.
func (e *BatchWriteError) Unwrap() error {
	return e.Err
}

// IndexReport summarises a batch indexing run.
type IndexReport struct {
	// BatchID identifies the run.
	BatchID string

	// Indexed counts records written successfully.
	Indexed int

	// Failed lists records that were skipped, in input order.
	Failed []*RecordError
}
