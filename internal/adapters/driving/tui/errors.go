package tui

import "errors"

// ErrMissingRuleService is returned when the rule service is not provided.
var ErrMissingRuleService = errors.New("tui: rule service is required")

// ErrMissingIndexService is returned when records are given but no index service extracts them.
var ErrMissingIndexService = errors.New("tui: index service is required to extract records")

// ErrMissingRecordService is returned when no records are given and no record service lists stored ones.
var ErrMissingRecordService = errors.New("tui: record service is required to browse stored records")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
