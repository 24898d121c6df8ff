// Package stream writes extracted fields as text lines, one per value.
//
// Each line is "name<TAB>value". Tabs, newlines and backslashes inside a
// value are escaped so every value stays on one line.
package stream

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
)

// Ensure Writer implements the interfaces.
var (
	_ driven.RecordWriter = (*Writer)(nil)
	_ domain.FieldSink    = (*Writer)(nil)
)

var escaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)

// Writer prints field lines to an io.Writer.
// Records written concurrently never interleave.
type Writer struct {
	mu  sync.Mutex
	out *bufio.Writer
	err error
}

// NewWriter creates a line writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// AddField writes one line. Write errors are kept and returned by Flush.
func (w *Writer) AddField(name, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.line(name, value)
}

// WriteRecord writes every value of rec followed by a blank line.
func (w *Writer) WriteRecord(_ context.Context, rec *domain.IndexedRecord) error {
	if rec == nil {
		return domain.ErrInvalidInput
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range rec.Fields {
		for _, v := range f.Values {
			w.line(f.Name, v)
		}
	}
	w.write("\n")
	return w.err
}

// Flush writes buffered output and returns the first write error.
func (w *Writer) Flush(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = w.out.Flush()
	}
	return w.err
}

func (w *Writer) line(name, value string) {
	w.write(name)
	w.write("\t")
	w.write(escaper.Replace(value))
	w.write("\n")
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.out.WriteString(s)
}
