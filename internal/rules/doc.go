// Package rules holds the declarative mapping from MARC tag and subfield
// code to output field.
//
// A RuleSet is assembled once with a Builder and is read-only afterwards, so
// one RuleSet can serve any number of concurrent extractions.
//
// Each tag maps to exactly one TagRule:
//
//   - Trigger: called once per occurrence of the tag, subfields are ignored
//   - SubfieldRules: a per-code table of SubfieldRule
//
// and each subfield code maps to one SubfieldRule:
//
//   - DirectField: the subfield text is appended to the named field
//   - Callback: the subfield text is handed to a function that may derive fields
package rules
