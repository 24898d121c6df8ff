package services

import (
	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
	"github.com/custodia-labs/marcfields/internal/rules"
)

// Ensure RuleService implements the interface.
var _ driving.RuleService = (*RuleService)(nil)

// RuleService describes a rule set.
type RuleService struct {
	rules *rules.RuleSet
}

// NewRuleService creates a rule service for rs.
func NewRuleService(rs *rules.RuleSet) *RuleService {
	return &RuleService{rules: rs}
}

// Describe lists every rule.
func (s *RuleService) Describe() []domain.RuleDescription {
	return rules.Describe(s.rules)
}

// Formats lists the formats with rules.
func (s *RuleService) Formats() []string {
	return s.rules.Formats()
}
