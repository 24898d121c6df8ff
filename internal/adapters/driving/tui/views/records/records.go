// Package records provides the record list view of the field browser.
package records

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// View lists records and the records that failed to extract.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	records  []domain.IndexedRecord
	failed   []*domain.RecordError
	selected int
	offset   int
	width    int
	height   int
}

// NewView creates a record list view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	return &View{styles: s, keymap: km}
}

// SetRecords replaces the listed records.
func (v *View) SetRecords(recs []domain.IndexedRecord, failed []*domain.RecordError) {
	v.records = recs
	v.failed = failed
	v.selected = 0
	v.offset = 0
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.move(-1)
	case keymap.Matches(k, v.keymap.Down):
		v.move(1)
	case keymap.Matches(k, v.keymap.PageUp):
		v.move(-v.visible())
	case keymap.Matches(k, v.keymap.PageDown):
		v.move(v.visible())
	case keymap.Matches(k, v.keymap.Top):
		v.move(-len(v.records))
	case keymap.Matches(k, v.keymap.Bottom):
		v.move(len(v.records))
	case keymap.Matches(k, v.keymap.Select):
		rec := v.Selected()
		if rec == nil {
			return v, nil
		}
		return v, func() tea.Msg { return messages.RecordSelected{Record: rec} }
	}
	return v, nil
}

func (v *View) move(delta int) {
	if len(v.records) == 0 {
		return
	}
	v.selected = min(max(v.selected+delta, 0), len(v.records)-1)
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+v.visible() {
		v.offset = v.selected - v.visible() + 1
	}
}

// visible is the number of record rows that fit.
func (v *View) visible() int {
	// title, blank line, failures block and status bar
	reserved := 4
	if len(v.failed) > 0 {
		reserved += min(len(v.failed), 5) + 2
	}
	return max(v.height-reserved, 1)
}

// View renders the list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Records"))
	b.WriteString("\n\n")

	if len(v.records) == 0 {
		b.WriteString(v.styles.Muted.Render("No records."))
		b.WriteString("\n")
	}

	end := min(v.offset+v.visible(), len(v.records))
	for i := v.offset; i < end; i++ {
		rec := v.records[i]
		line := fmt.Sprintf("%-24s %-10s %3d fields  %s",
			rec.ID, collection(rec.Fields), len(rec.Fields), rec.URI)
		if w := v.width - 2; w > 0 && len(line) > w {
			line = line[:w]
		}
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(v.failed) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("%d failed:", len(v.failed))))
		b.WriteString("\n")
		for i, f := range v.failed {
			if i == 5 {
				b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  ... %d more", len(v.failed)-5)))
				b.WriteString("\n")
				break
			}
			b.WriteString(v.styles.Error.Render("  " + f.Error()))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func collection(fs domain.Fields) string {
	if c := fs.Get(domain.CollectionIdentifierField); len(c) > 0 {
		return c[0]
	}
	return ""
}

// Selected returns the highlighted record, or nil.
func (v *View) Selected() *domain.IndexedRecord {
	if v.selected >= len(v.records) {
		return nil
	}
	return &v.records[v.selected]
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
