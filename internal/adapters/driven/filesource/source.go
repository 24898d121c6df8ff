// Package filesource reads MARCXchange records from files, directories and stdin.
//
// Files ending in .gz are decompressed with parallel gzip, so record dumps
// can be indexed without unpacking them first.
package filesource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// Stdin is the location naming standard input.
const Stdin = "-"

// Extensions are the file suffixes treated as records when expanding a directory.
var Extensions = []string{".xml", ".xml.gz", ".marcx", ".marcx.gz"}

// Source reads record files.
type Source struct {
	stdin io.Reader
}

// NewSource creates a file source. stdin is read for the "-" location.
func NewSource(stdin io.Reader) *Source {
	return &Source{stdin: stdin}
}

// IsRecordFile reports whether name has a record file suffix.
func IsRecordFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Expand resolves location to record files. Directories are not walked recursively.
func (s *Source) Expand(location string) ([]string, error) {
	if location == Stdin {
		return []string{Stdin}, nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{location}, nil
	}

	entries, err := os.ReadDir(location)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsRecordFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(location, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Read loads the record at location.
func (s *Source) Read(_ context.Context, location string) (*domain.RawRecord, error) {
	content, err := s.readAll(location)
	if err != nil {
		return nil, err
	}
	return &domain.RawRecord{
		URI:      location,
		MIMEType: domain.MIMEMarcxchange,
		Content:  content,
	}, nil
}

func (s *Source) readAll(location string) ([]byte, error) {
	if location == Stdin {
		if s.stdin == nil {
			return nil, fmt.Errorf("%w: no standard input", domain.ErrInvalidInput)
		}
		return io.ReadAll(s.stdin)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(location), ".gz") {
		return io.ReadAll(f)
	}

	zr, err := pgzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", location, err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
