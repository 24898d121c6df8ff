// Package extractor walks a parsed MARCXchange record, applies a RuleSet and
// emits the resulting fields.
//
// Extraction is a single synchronous pass over an in-memory tree. An
// Extractor holds only the shared, read-only RuleSet, so one Extractor can be
// used from many goroutines; every call gets its own Accumulator.
package extractor
