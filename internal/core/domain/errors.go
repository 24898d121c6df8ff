package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a MIME type no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// Record Errors.

	// ErrMalformedXML indicates the record content is not well-formed XML.
	ErrMalformedXML = errors.New("malformed xml")

	// ErrNotMarcxRecord indicates the document element is not a marcx:record.
	ErrNotMarcxRecord = errors.New("document not of marcx:record type")

	// ErrUnsupportedFormat indicates the record's format attribute names
	// a format that has no rules.
	ErrUnsupportedFormat = errors.New("cannot handle record format")

	// Rule Errors.

	// ErrInvalidRuleSpec indicates a field specifier is not of the form <tag:3><code:1>.
	ErrInvalidRuleSpec = errors.New("invalid rule specifier")

	// ErrDuplicateRule indicates a tag or subfield rule was registered twice.
	ErrDuplicateRule = errors.New("duplicate rule")
)
