package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Reserved output fields.
const (
	// CollectionIdentifierField classifies which logical collection a record belongs to.
	CollectionIdentifierField = "rec.collectionIdentifier"

	// DefaultCollectionIdentifier is used when no rule derives a collection.
	DefaultCollectionIdentifier = "any"
)

// Field is a named, ordered sequence of values destined for the search index.
type Field struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Fields is an ordered set of output fields.
// Order is the order in which each field name was first produced.
type Fields []Field

// Get returns the values of the named field, or nil.
func (f Fields) Get(name string) []string {
	for i := range f {
		if f[i].Name == name {
			return f[i].Values
		}
	}
	return nil
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i := range f {
		names[i] = f[i].Name
	}
	return names
}

// Len returns the total number of values across all fields.
func (f Fields) Len() int {
	n := 0
	for i := range f {
		n += len(f[i].Values)
	}
	return n
}

// MarshalJSON encodes the fields as a JSON object keeping field order:
// {"marc.001a": ["1234"], ...}.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f[i].Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		values := f[i].Values
		if values == nil {
			values = []string{}
		}
		data, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IndexedRecord is the extraction result for one record, as kept by a store.
type IndexedRecord struct {
	// ID is the record identifier (marc.001a:marc.001b when present).
	ID string

	// BatchID groups records indexed in the same run.
	BatchID string

	// URI is where the record came from.
	URI string

	// Format is the record format the rules were selected by.
	Format string

	// Fields are the extracted output fields.
	Fields Fields

	// IndexedAt is when the record was stored.
	IndexedAt time.Time
}
