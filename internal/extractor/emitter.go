package extractor

import (
	"encoding/json"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// Emit pushes every value of fs to sink, field by field, in order.
func Emit(fs domain.Fields, sink domain.FieldSink) {
	for _, f := range fs {
		for _, v := range f.Values {
			sink.AddField(f.Name, v)
		}
	}
}

// MarshalFields encodes fs as an ordered JSON object of field name to values.
func MarshalFields(fs domain.Fields) ([]byte, error) {
	return json.Marshal(fs)
}

// MarshalFieldsIndent is MarshalFields with indentation, for people.
func MarshalFieldsIndent(fs domain.Fields) ([]byte, error) {
	return json.MarshalIndent(fs, "", "  ")
}

// Collector is a FieldSink that rebuilds ordered Fields from AddField calls.
// It is not safe for concurrent use.
type Collector struct {
	index  map[string]int
	fields domain.Fields
}

// Ensure Collector implements the interface.
var _ domain.FieldSink = (*Collector)(nil)

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{index: make(map[string]int)}
}

// AddField appends value to the named field.
func (c *Collector) AddField(name, value string) {
	i, ok := c.index[name]
	if !ok {
		i = len(c.fields)
		c.index[name] = i
		c.fields = append(c.fields, domain.Field{Name: name})
	}
	c.fields[i].Values = append(c.fields[i].Values, value)
}

// Fields returns the collected fields.
func (c *Collector) Fields() domain.Fields {
	return c.fields
}
