// Package status provides the status bar of the field browser.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/styles"
)

// State represents what the browser is doing.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFields  State = "fields"
	StateError   State = "error"
)

// Bar displays status on the left and keybinding hints on the right.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	records int
	failed  int
	width   int
}

// NewBar creates a new status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  StateLoading,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// The bar's own horizontal padding counts against its width.
	padding := s.width - s.styles.StatusBar.GetHorizontalFrameSize() -
		lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Extracting...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateFields:
		return s.styles.Normal.Render(s.message)
	}

	text := fmt.Sprintf("%d records", s.records)
	if s.failed > 0 {
		return s.styles.Normal.Render(text) + s.styles.Warning.Render(fmt.Sprintf(", %d failed", s.failed))
	}
	return s.styles.Normal.Render(text)
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateFields {
		bindings = s.keymap.FieldsHelp()
	}
	return s.styles.Muted.Render(Hints(bindings))
}

// Hints formats bindings as "key: desc | key: desc".
func Hints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return strings.Join(hints, " | ")
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the message shown for the error and fields states.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCounts sets the loaded and failed record counts.
func (s *Bar) SetCounts(records, failed int) {
	s.records = records
	s.failed = failed
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
