package domain

import "strings"

// NodeKind distinguishes element nodes from character data.
type NodeKind int

const (
	// ElementNode is an XML element.
	ElementNode NodeKind = iota + 1

	// TextNode is character data (text or CDATA).
	TextNode
)

// Attr is a single XML attribute.
type Attr struct {
	// Space is the resolved namespace URI, empty for unqualified attributes.
	Space string

	// Local is the attribute's local name.
	Local string

	// Value is the attribute value.
	Value string
}

// Node is one node of a parsed XML document.
// Comments and processing instructions are not represented.
type Node struct {
	// Kind is the node type.
	Kind NodeKind

	// Space is the resolved namespace URI of an element.
	Space string

	// Local is the local name of an element.
	Local string

	// Attrs holds element attributes in document order.
	Attrs []Attr

	// Data holds the character data of a text node.
	Data string

	// Children holds child nodes in document order.
	Children []*Node
}

// IsElement reports whether n is an element with the given namespace and local name.
func (n *Node) IsElement(space, local string) bool {
	return n != nil && n.Kind == ElementNode && n.Space == space && n.Local == local
}

// Attr returns the value of the unqualified attribute with the given local name.
func (n *Node) Attr(local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Space == "" && a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the concatenated character data of n and all its descendants.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.Data
	}
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	for _, c := range n.Children {
		switch c.Kind {
		case TextNode:
			b.WriteString(c.Data)
		case ElementNode:
			c.appendText(b)
		}
	}
}
