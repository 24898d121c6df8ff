package rules

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/logger"
)

// FieldPrefix is prepended to bulk specifiers to form output field names.
const FieldPrefix = "marc."

// Builder assembles a RuleSet. Problems are collected and reported by Build.
// A Builder is not safe for concurrent use.
type Builder struct {
	formats map[string]*formatBuilder
	errs    []error
}

type formatBuilder struct {
	triggers  map[string]Trigger
	subfields map[string]map[string]SubfieldRule
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		formats: make(map[string]*formatBuilder),
	}
}

func (b *Builder) format(name string) *formatBuilder {
	f, ok := b.formats[name]
	if !ok {
		f = &formatBuilder{
			triggers:  make(map[string]Trigger),
			subfields: make(map[string]map[string]SubfieldRule),
		}
		b.formats[name] = f
	}
	return f
}

func (b *Builder) fail(err error) *Builder {
	b.errs = append(b.errs, err)
	return b
}

// Trigger registers fn to run once for each occurrence of tag.
func (b *Builder) Trigger(format, tag string, fn Trigger) *Builder {
	if err := checkTag(tag); err != nil {
		return b.fail(err)
	}
	f := b.format(format)
	if _, ok := f.triggers[tag]; ok {
		return b.fail(fmt.Errorf("%w: %s trigger on tag %s", domain.ErrDuplicateRule, format, tag))
	}
	if _, ok := f.subfields[tag]; ok {
		return b.fail(fmt.Errorf("%w: %s tag %s already has subfield rules", domain.ErrDuplicateRule, format, tag))
	}
	f.triggers[tag] = fn
	return b
}

// Callback registers fn for subfield code of tag.
func (b *Builder) Callback(format, tag, code string, fn Callback) *Builder {
	return b.subfield(format, tag, code, fn)
}

// Field maps subfield code of tag to the output field name.
func (b *Builder) Field(format, tag, code, name string) *Builder {
	return b.subfield(format, tag, code, DirectField(name))
}

func (b *Builder) subfield(format, tag, code string, rule SubfieldRule) *Builder {
	if err := checkTag(tag); err != nil {
		return b.fail(err)
	}
	if err := checkCode(code); err != nil {
		return b.fail(err)
	}
	f := b.format(format)
	if _, ok := f.triggers[tag]; ok {
		return b.fail(fmt.Errorf("%w: %s tag %s is a trigger", domain.ErrDuplicateRule, format, tag))
	}
	codes := f.subfields[tag]
	if codes == nil {
		codes = make(map[string]SubfieldRule)
		f.subfields[tag] = codes
	}
	if _, ok := codes[code]; ok {
		return b.fail(fmt.Errorf("%w: %s %s%s", domain.ErrDuplicateRule, format, tag, code))
	}
	codes[code] = rule
	return b
}

// DirectFields maps each <tag:3><code:1> specifier to the field "marc.<specifier>".
// Specifiers for tags that are triggers, or for codes that already have a rule,
// leave the existing rule in place.
func (b *Builder) DirectFields(format string, specs ...string) *Builder {
	f := b.format(format)
	for _, spec := range specs {
		tag, code, err := SplitSpec(spec)
		if err != nil {
			b.fail(err)
			continue
		}
		if _, ok := f.triggers[tag]; ok {
			logger.Debug("rules: %s %s: tag %s is a trigger, specifier ignored", format, spec, tag)
			continue
		}
		codes := f.subfields[tag]
		if codes == nil {
			codes = make(map[string]SubfieldRule)
			f.subfields[tag] = codes
		}
		if _, ok := codes[code]; ok {
			logger.Debug("rules: %s %s already mapped, specifier ignored", format, spec)
			continue
		}
		codes[code] = DirectField(FieldPrefix + spec)
	}
	return b
}

// Build returns the assembled RuleSet, or every problem recorded so far.
// The RuleSet shares no state with the builder.
func (b *Builder) Build() (*RuleSet, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	rs := &RuleSet{formats: make(map[string]*FormatRules, len(b.formats))}
	for name, f := range b.formats {
		fr := &FormatRules{
			name: name,
			tags: make(map[string]TagRule, len(f.triggers)+len(f.subfields)),
		}
		for tag, fn := range f.triggers {
			fr.tags[tag] = fn
		}
		for tag, codes := range f.subfields {
			sr := SubfieldRules{codes: make(map[string]SubfieldRule, len(codes))}
			for code, rule := range codes {
				sr.codes[code] = rule
			}
			fr.tags[tag] = sr
		}
		rs.formats[name] = fr
	}
	return rs, nil
}

// SplitSpec splits a <tag:3><code:1> specifier such as "245ø".
func SplitSpec(spec string) (tag, code string, err error) {
	if !utf8.ValidString(spec) || utf8.RuneCountInString(spec) != 4 || hasSpace(spec) {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidRuleSpec, spec)
	}
	_, size := utf8.DecodeLastRuneInString(spec)
	return spec[:len(spec)-size], spec[len(spec)-size:], nil
}

func checkTag(tag string) error {
	if utf8.RuneCountInString(tag) != 3 || hasSpace(tag) {
		return fmt.Errorf("%w: tag %q", domain.ErrInvalidRuleSpec, tag)
	}
	return nil
}

func checkCode(code string) error {
	if utf8.RuneCountInString(code) != 1 || hasSpace(code) {
		return fmt.Errorf("%w: code %q", domain.ErrInvalidRuleSpec, code)
	}
	return nil
}

func hasSpace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return true
		}
	}
	return false
}
