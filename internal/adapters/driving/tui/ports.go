// Package tui provides the interactive field browser for marcfields.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the browser uses.
type Ports struct {
	// Index extracts records given on the command line.
	Index driving.IndexService

	// Records lists records stored by earlier indexing runs.
	Records driving.RecordService

	// Rules describes the active extraction rules.
	Rules driving.RuleService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(index driving.IndexService, records driving.RecordService, rules driving.RuleService) *Ports {
	return &Ports{
		Index:   index,
		Records: records,
		Rules:   rules,
	}
}

// Validate ensures the ports needed to browse are set.
// extracting selects whether records are extracted from input or read from the store.
func (p *Ports) Validate(extracting bool) error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Rules == nil {
		return ErrMissingRuleService
	}
	if extracting && p.Index == nil {
		return ErrMissingIndexService
	}
	if !extracting && p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
