// Package domain defines the core entities for marcfields.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Node: A parsed XML element or text node
//   - Field, Fields: Ordered output fields destined for a search index
//   - RawRecord: Opaque record bytes handed in by a caller
//   - IndexedRecord: A record's extracted fields, as persisted by a store
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
