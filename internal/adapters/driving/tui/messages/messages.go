// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewRecords lists the loaded records.
	ViewRecords ViewType = iota
	// ViewFields shows the fields of one record.
	ViewFields
	// ViewRules lists the extraction rules.
	ViewRules
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewRecords:
		return "records"
	case ViewFields:
		return "fields"
	case ViewRules:
		return "rules"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// RecordsLoaded carries extracted or stored records to the model.
type RecordsLoaded struct {
	Records []domain.IndexedRecord
	Failed  []*domain.RecordError
	Err     error
}

// RecordSelected is sent when a record is opened.
type RecordSelected struct {
	Record *domain.IndexedRecord
}

// ErrorOccurred reports an error to display.
type ErrorOccurred struct {
	Err error
}
