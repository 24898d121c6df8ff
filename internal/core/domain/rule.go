package domain

// RuleKind says what a rule does with a tag or subfield.
type RuleKind string

// Rule kinds.
const (
	// RuleField copies subfield text into a named field.
	RuleField RuleKind = "field"

	// RuleCallback runs code with the subfield text.
	RuleCallback RuleKind = "callback"

	// RuleTrigger runs code once per datafield, without subfield data.
	RuleTrigger RuleKind = "trigger"
)

// RuleDescription is a flat, printable view of one extraction rule.
type RuleDescription struct {
	Format string   `json:"format"`
	Tag    string   `json:"tag"`
	Code   string   `json:"code,omitempty"`
	Kind   RuleKind `json:"kind"`
	Field  string   `json:"field,omitempty"`
}
