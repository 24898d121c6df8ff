// Package fields accumulates the output fields of a single record extraction.
//
// An Accumulator is created per record and never shared: output values keep
// the order they were appended in, and field names keep the order they were
// first seen in. Cross-field correlation state (the record number and agency
// seen so far) lives in a separate State rather than in the output fields.
package fields
