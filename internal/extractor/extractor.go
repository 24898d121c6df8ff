package extractor

import (
	"fmt"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/fields"
	"github.com/custodia-labs/marcfields/internal/logger"
	"github.com/custodia-labs/marcfields/internal/rules"
)

// Result is the outcome of extracting one record.
type Result struct {
	// Format is the record format the rules were selected by.
	Format string

	// Fields are the output fields in first-produced order.
	Fields domain.Fields
}

// Extractor applies a RuleSet to record trees.
type Extractor struct {
	rules     *rules.RuleSet
	namespace string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithNamespace sets the namespace URI the record vocabulary is expected in.
// Defaults to domain.MarcxNamespace.
func WithNamespace(uri string) Option {
	return func(e *Extractor) {
		e.namespace = uri
	}
}

// New creates an Extractor for rs.
func New(rs *rules.RuleSet, opts ...Option) *Extractor {
	e := &Extractor{
		rules:     rs,
		namespace: domain.MarcxNamespace,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract applies the rules to the record rooted at root.
// It fails with domain.ErrNotMarcxRecord when root is not a marcx:record and
// with domain.ErrUnsupportedFormat when no rules exist for the record format.
func (e *Extractor) Extract(root *domain.Node) (*Result, error) {
	acc, format, err := e.Accumulate(root)
	if err != nil {
		return nil, err
	}
	return &Result{Format: format, Fields: acc.Fields()}, nil
}

// Accumulate is Extract without the final snapshot; it returns the
// Accumulator the rules wrote to.
func (e *Extractor) Accumulate(root *domain.Node) (*fields.Accumulator, string, error) {
	if !root.IsElement(e.namespace, domain.RecordElement) {
		return nil, "", domain.ErrNotMarcxRecord
	}

	format, ok := root.Attr(domain.FormatAttr)
	if !ok {
		format = domain.DefaultFormat
	}
	logger.Trace("format = %s", format)

	fr, ok := e.rules.Format(format)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	acc := fields.New()
	for _, node := range root.Children {
		if !node.IsElement(e.namespace, domain.DatafieldElement) {
			continue
		}
		tag, _ := node.Attr(domain.TagAttr)
		rule, ok := fr.Tag(tag)
		if !ok {
			continue
		}

		switch r := rule.(type) {
		case rules.Trigger:
			if r == nil {
				logger.Warn("datafield: %s format: %s invalid rule: nil trigger", tag, format)
				continue
			}
			logger.Trace("Calling trigger on %s", tag)
			r(acc)
		case rules.SubfieldRules:
			e.subfields(acc, format, tag, node, r)
		default:
			logger.Warn("datafield: %s format: %s invalid rule: type %T, expected trigger or subfield rules",
				tag, format, rule)
		}
	}

	return acc, format, nil
}

func (e *Extractor) subfields(
	acc *fields.Accumulator,
	format, tag string,
	datafield *domain.Node,
	sr rules.SubfieldRules,
) {
	for _, node := range datafield.Children {
		if !node.IsElement(e.namespace, domain.SubfieldElement) {
			continue
		}
		code, _ := node.Attr(domain.CodeAttr)
		rule, ok := sr.Code(code)
		if !ok {
			continue
		}

		switch r := rule.(type) {
		case rules.Callback:
			if r == nil {
				logger.Warn("datafield: %s%s format: %s invalid rule: nil callback", tag, code, format)
				continue
			}
			logger.Trace("Calling function on %s%s", tag, code)
			r(acc, node.Text())
		case rules.DirectField:
			if r == "" {
				logger.Warn("datafield: %s%s format: %s invalid rule: empty field name", tag, code, format)
				continue
			}
			logger.Trace("Adding %s%s to %s", tag, code, r)
			acc.Append(string(r), node.Text())
		default:
			logger.Warn("datafield: %s%s format: %s invalid rule: type %T, expected callback or field",
				tag, code, format, rule)
		}
	}
}
