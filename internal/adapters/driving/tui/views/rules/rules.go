// Package rules provides the view listing the active extraction rules.
package rules

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// View lists rules in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model
	count    int
}

// NewView creates a rules view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
	}
}

// SetRules replaces the listed rules.
func (v *View) SetRules(descs []domain.RuleDescription) {
	v.count = len(descs)
	var b strings.Builder
	for _, d := range descs {
		spec := d.Tag + d.Code
		target := d.Field
		if d.Kind != domain.RuleField {
			target = v.styles.Muted.Render("(" + string(d.Kind) + ")")
		}
		fmt.Fprintf(&b, "%-10s %s  %s\n", d.Format, v.styles.FieldName.Render(fmt.Sprintf("%-4s", spec)), target)
	}
	v.viewport.SetContent(b.String())
	v.viewport.GotoTop()
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keymap.Matches(keyMsg.String(), v.keymap.Back) {
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewRecords} }
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the rules view.
func (v *View) View() string {
	return v.styles.Title.Render(fmt.Sprintf("Rules (%d)", v.count)) + "\n\n" + v.viewport.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(height-3, 1)
}
