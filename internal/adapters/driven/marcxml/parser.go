// Package marcxml parses record XML into domain nodes.
package marcxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.RecordParser = (*Parser)(nil)

// Parser builds a domain.Node tree with resolved namespaces.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// Parse returns the document element of content.
func (p *Parser) Parse(content []byte) (*domain.Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charsetReader

	var root *domain.Node
	var stack []*domain.Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &domain.Node{
				Kind:  domain.ElementNode,
				Space: t.Name.Space,
				Local: t.Name.Local,
				Attrs: attrs(t.Attr),
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: more than one document element", domain.ErrMalformedXML)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &domain.Node{
				Kind: domain.TextNode,
				Data: string(t),
			})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no document element", domain.ErrMalformedXML)
	}
	return root, nil
}

// attrs converts attributes, dropping namespace declarations.
func attrs(in []xml.Attr) []domain.Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, domain.Attr{Space: a.Name.Space, Local: a.Name.Local, Value: a.Value})
	}
	return out
}

// charsetReader decodes non UTF-8 documents such as ISO-8859-1 exports.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
