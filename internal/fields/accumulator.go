package fields

import "github.com/custodia-labs/marcfields/internal/core/domain"

// Accumulator collects output values for one record.
// It is not safe for concurrent use.
type Accumulator struct {
	order  []string
	values map[string][]string
	state  State
}

// New returns an Accumulator holding the default collection identifier.
func New() *Accumulator {
	a := &Accumulator{
		values: make(map[string][]string),
	}
	a.Set(domain.CollectionIdentifierField, domain.DefaultCollectionIdentifier)
	return a
}

// Append adds value to the end of field, creating the field if needed.
func (a *Accumulator) Append(field, value string) {
	if _, ok := a.values[field]; !ok {
		a.order = append(a.order, field)
	}
	a.values[field] = append(a.values[field], value)
}

// Set replaces all values of field. A field that already exists keeps its position.
func (a *Accumulator) Set(field string, values ...string) {
	if _, ok := a.values[field]; !ok {
		a.order = append(a.order, field)
	}
	a.values[field] = append([]string(nil), values...)
}

// Has reports whether field has been set or appended to.
func (a *Accumulator) Has(field string) bool {
	_, ok := a.values[field]
	return ok
}

// Values returns a copy of the values of field.
func (a *Accumulator) Values(field string) []string {
	v, ok := a.values[field]
	if !ok {
		return nil
	}
	return append([]string(nil), v...)
}

// State returns the record's cross-field state.
func (a *Accumulator) State() *State {
	return &a.state
}

// Fields returns the accumulated fields in first-seen order.
// Fields without values are left out.
func (a *Accumulator) Fields() domain.Fields {
	out := make(domain.Fields, 0, len(a.order))
	for _, name := range a.order {
		v := a.values[name]
		if len(v) == 0 {
			continue
		}
		out = append(out, domain.Field{Name: name, Values: append([]string(nil), v...)})
	}
	return out
}
