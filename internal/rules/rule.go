package rules

import (
	"sort"

	"github.com/custodia-labs/marcfields/internal/fields"
)

// TagRule is either a Trigger or a SubfieldRules.
type TagRule interface {
	isTagRule()
}

// SubfieldRule is either a DirectField or a Callback.
type SubfieldRule interface {
	isSubfieldRule()
}

// Trigger runs once for each occurrence of a tag.
type Trigger func(acc *fields.Accumulator)

// DirectField names the output field a subfield's text is appended to.
type DirectField string

// Callback receives the text of a subfield.
type Callback func(acc *fields.Accumulator, value string)

// SubfieldRules maps subfield codes of one tag to their rules.
type SubfieldRules struct {
	codes map[string]SubfieldRule
}

func (Trigger) isTagRule() {}
func (SubfieldRules) isTagRule() {}
func (DirectField) isSubfieldRule() {}
func (Callback) isSubfieldRule() {}

// Code returns the rule for a subfield code.
func (s SubfieldRules) Code(code string) (SubfieldRule, bool) {
	r, ok := s.codes[code]
	return r, ok
}

// Codes returns the mapped subfield codes in sorted order.
func (s SubfieldRules) Codes() []string {
	return sortedKeys(s.codes)
}

// FormatRules maps the tags of one record format to their rules.
type FormatRules struct {
	name string
	tags map[string]TagRule
}

// Name returns the record format name.
func (f *FormatRules) Name() string {
	return f.name
}

// Tag returns the rule for a tag.
func (f *FormatRules) Tag(tag string) (TagRule, bool) {
	r, ok := f.tags[tag]
	return r, ok
}

// Tags returns the mapped tags in sorted order.
func (f *FormatRules) Tags() []string {
	return sortedKeys(f.tags)
}

// RuleSet maps record format names to their rules.
type RuleSet struct {
	formats map[string]*FormatRules
}

// Format returns the rules for a record format.
func (r *RuleSet) Format(name string) (*FormatRules, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.formats[name]
	return f, ok
}

// Formats returns the known format names in sorted order.
func (r *RuleSet) Formats() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.formats)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
