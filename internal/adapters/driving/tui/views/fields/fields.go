// Package fields provides the per-record field view of the field browser.
package fields

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/extractor"
)

// View shows one record's fields in a scrollable viewport,
// either as a name/value table or as the JSON document.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model
	record   *domain.IndexedRecord
	json     bool
	err      error
}

// NewView creates a field view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
	}
}

// SetRecord shows rec from the top.
func (v *View) SetRecord(rec *domain.IndexedRecord) {
	v.record = rec
	v.refresh()
	v.viewport.GotoTop()
}

// Update handles key presses; scrolling is delegated to the viewport.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		k := keyMsg.String()
		switch {
		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewRecords} }
		case keymap.Matches(k, v.keymap.JSON):
			v.json = !v.json
			v.refresh()
			return v, nil
		case keymap.Matches(k, v.keymap.Top):
			v.viewport.GotoTop()
			return v, nil
		case keymap.Matches(k, v.keymap.Bottom):
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) refresh() {
	v.err = nil
	if v.record == nil {
		v.viewport.SetContent("")
		return
	}
	if v.json {
		data, err := extractor.MarshalFieldsIndent(v.record.Fields)
		if err != nil {
			v.err = err
			return
		}
		v.viewport.SetContent(string(data))
		return
	}
	v.viewport.SetContent(Table(v.styles, v.record.Fields))
}

// Table renders fields as aligned "name  value" rows, one per value.
func Table(s *styles.Styles, fs domain.Fields) string {
	width := 0
	for _, f := range fs {
		width = max(width, len([]rune(f.Name)))
	}

	var b strings.Builder
	for _, f := range fs {
		pad := strings.Repeat(" ", width-len([]rune(f.Name)))
		for i, val := range f.Values {
			name := f.Name
			if i > 0 {
				name = strings.Repeat(" ", len([]rune(f.Name)))
			}
			b.WriteString(s.Field(f.Name).Render(name))
			b.WriteString(pad + "  ")
			b.WriteString(s.FieldValue.Render(val))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// View renders the field view.
func (v *View) View() string {
	var b strings.Builder

	title := "Fields"
	if v.record != nil {
		title = fmt.Sprintf("%s  (%s, %d values)", v.record.ID, v.record.Format, v.record.Fields.Len())
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.viewport.View())
	return b.String()
}

// JSON reports whether the JSON rendering is active.
func (v *View) JSON() bool {
	return v.json
}

// Record returns the shown record.
func (v *View) Record() *domain.IndexedRecord {
	return v.record
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = width
	// title, blank line and status bar
	v.viewport.Height = max(height-3, 1)
}
