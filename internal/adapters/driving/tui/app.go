package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/views/fields"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/views/records"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/views/rules"
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// App is the field browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// inputs are extracted on load. When empty, stored records are listed.
	inputs []domain.RawRecord

	// batchID restricts stored records to one indexing run.
	batchID string

	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	recordsView *records.View
	fieldsView  *fields.View
	rulesView   *rules.View
	statusBar   *status.Bar

	currentView messages.ViewType
	showHelp    bool
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser over inputs, or over stored records when inputs is empty.
func NewApp(ports *Ports, inputs []domain.RawRecord) (*App, error) {
	if err := ports.Validate(len(inputs) > 0); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		inputs:      inputs,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		recordsView: records.NewView(s, km),
		fieldsView:  fields.NewView(s, km),
		rulesView:   rules.NewView(s, km),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewRecords,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithBatch limits stored records to one batch.
func (a *App) WithBatch(batchID string) *App {
	a.batchID = batchID
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("marcfields"),
		a.load(),
	)
}

// load extracts the inputs, or lists stored records.
func (a *App) load() tea.Cmd {
	ctx := a.ctx
	inputs := a.inputs
	ports := a.ports
	batchID := a.batchID

	return func() tea.Msg {
		if len(inputs) == 0 {
			recs, err := ports.Records.List(ctx, batchID)
			return messages.RecordsLoaded{Records: recs, Err: err}
		}

		var msg messages.RecordsLoaded
		for i := range inputs {
			rec, err := ports.Index.Extract(ctx, &inputs[i])
			if err != nil {
				if ctx.Err() != nil {
					msg.Err = ctx.Err()
					return msg
				}
				msg.Failed = append(msg.Failed, &domain.RecordError{URI: inputs[i].URI, Err: err})
				continue
			}
			msg.Records = append(msg.Records, *rec)
		}
		return msg
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return a, tea.Quit
		}
		if keymap.Matches(k, a.keymap.Help) {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			if keymap.Matches(k, a.keymap.Back) {
				a.showHelp = false
				return a, nil
			}
			if keymap.Matches(k, a.keymap.Quit) {
				return a, tea.Quit
			}
			return a, nil
		}

		switch a.currentView {
		case messages.ViewRecords:
			switch {
			case keymap.Matches(k, a.keymap.Quit):
				return a, tea.Quit
			case keymap.Matches(k, a.keymap.Rules):
				return a, func() tea.Msg { return messages.ViewChanged{View: messages.ViewRules} }
			case keymap.Matches(k, a.keymap.Reload):
				a.statusBar.SetState(status.StateLoading)
				return a, a.load()
			}
			a.recordsView, cmd = a.recordsView.Update(msg)
		case messages.ViewFields:
			if keymap.Matches(k, a.keymap.Quit) {
				return a, tea.Quit
			}
			a.fieldsView, cmd = a.fieldsView.Update(msg)
		case messages.ViewRules:
			if keymap.Matches(k, a.keymap.Quit) {
				return a, tea.Quit
			}
			a.rulesView, cmd = a.rulesView.Update(msg)
		}
		return a, cmd

	case messages.RecordsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.err = nil
		a.recordsView.SetRecords(msg.Records, msg.Failed)
		a.statusBar.SetCounts(len(msg.Records), len(msg.Failed))
		a.statusBar.SetState(status.StateReady)
		return a, nil

	case messages.RecordSelected:
		a.fieldsView.SetRecord(msg.Record)
		a.currentView = messages.ViewFields
		a.statusBar.SetState(status.StateFields)
		a.statusBar.SetMessage(fmt.Sprintf("%s: %d fields", msg.Record.ID, len(msg.Record.Fields)))
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewRules:
			a.rulesView.SetRules(a.ports.Rules.Describe())
			a.statusBar.SetState(status.StateReady)
		case messages.ViewRecords:
			a.statusBar.SetState(status.StateReady)
		case messages.ViewFields:
			a.statusBar.SetState(status.StateFields)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil
	}

	// Scroll and other viewport messages
	switch a.currentView {
	case messages.ViewFields:
		a.fieldsView, cmd = a.fieldsView.Update(msg)
	case messages.ViewRules:
		a.rulesView, cmd = a.rulesView.Update(msg)
	case messages.ViewRecords:
		a.recordsView, cmd = a.recordsView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case a.showHelp:
		body = a.viewHelp()
	case a.currentView == messages.ViewFields:
		body = a.fieldsView.View()
	case a.currentView == messages.ViewRules:
		body = a.rulesView.View()
	default:
		body = a.recordsView.View()
	}

	// pin the status bar to the last line
	lines := strings.Count(body, "\n")
	if pad := a.height - lines - 1; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		b.WriteString(a.styles.Help.Render(status.Hints(group)))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.recordsView.SetDimensions(width, height)
	a.fieldsView.SetDimensions(width, height)
	a.rulesView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Run starts the browser and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}
