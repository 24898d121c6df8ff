package driven

import "github.com/custodia-labs/marcfields/internal/core/domain"

// RecordParser parses record content into a tree of nodes.
type RecordParser interface {
	// Parse returns the document element of content.
	// Content that is not well-formed XML yields domain.ErrMalformedXML.
	Parse(content []byte) (*domain.Node, error)
}
