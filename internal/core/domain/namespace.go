package domain

// MarcxNamespace is the namespace URI of the MARCXchange v1 vocabulary.
const MarcxNamespace = "info:lc/xmlns/marcxchange-v1"

// MARCXchange element and attribute names.
const (
	RecordElement    = "record"
	DatafieldElement = "datafield"
	SubfieldElement  = "subfield"

	FormatAttr = "format"
	TagAttr    = "tag"
	CodeAttr   = "code"
)

// DefaultFormat is assumed when a record carries no format attribute.
const DefaultFormat = "danMARC2"

// Namespaces maps a vocabulary prefix to its namespace URI.
type Namespaces map[string]string

// DefaultNamespaces returns the namespaces known to the indexer.
func DefaultNamespaces() Namespaces {
	return Namespaces{
		"marcx": MarcxNamespace,
	}
}

// URI returns the namespace URI registered for prefix.
func (n Namespaces) URI(prefix string) (string, bool) {
	uri, ok := n[prefix]
	return uri, ok
}
