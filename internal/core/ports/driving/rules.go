package driving

import "github.com/custodia-labs/marcfields/internal/core/domain"

// RuleService exposes the active extraction rules.
type RuleService interface {
	// Describe lists every rule sorted by format, tag and code.
	Describe() []domain.RuleDescription

	// Formats lists the record formats rules exist for.
	Formats() []string
}
