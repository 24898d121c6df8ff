// Package httpapi serves field extraction over HTTP.
//
// Routes:
//
//	GET  /version             build version
//	GET  /healthcheck         liveness
//	POST /api/fields          record XML in, ordered field JSON out
//	POST /api/index           record XML in, written to the configured sink
//	GET  /api/rules           active extraction rules
//	GET  /api/records/:id     stored record fields
package httpapi

import (
	"errors"

	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
)

// ErrMissingIndexService is returned when the index service is not provided.
var ErrMissingIndexService = errors.New("httpapi: index service is required")

// Ports aggregates the driving ports the HTTP API uses.
type Ports struct {
	// Index extracts and indexes records.
	Index driving.IndexService

	// Rules describes the active rules. Optional.
	Rules driving.RuleService

	// Records reads stored records. Optional.
	Records driving.RecordService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Index == nil {
		return ErrMissingIndexService
	}
	return nil
}
