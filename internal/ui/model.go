package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dinegrip/internal/config"
	"dinegrip/internal/controller"
	"dinegrip/internal/domain"
	"dinegrip/internal/eventbus"
)

// Model represents the UI state. Search state itself lives in the
// controller; the model keeps only presentation concerns and reads
// projections when rendering.
type Model struct {
	ctrl   *controller.Controller
	cfg    *config.Config
	styles *Styles

	input   textinput.Model
	spin    spinner.Model
	width   int
	height  int
	loading bool
	loadErr string

	scopeIdx    int // index into ctrl.AvailableScopes()
	selectedIdx int // index into the visible results

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates a new UI model
func NewModel(ctrl *controller.Controller, cfg *config.Config) *Model {
	input := textinput.New()
	input.Placeholder = "Search restaurants…"
	input.Prompt = "/ "
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	return &Model{
		ctrl:    ctrl,
		cfg:     cfg,
		styles:  NewStyles(),
		input:   input,
		spin:    spin,
		loading: true,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case EventMsg:
		return m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.loadErr = fmt.Sprintf("help pager: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleEvent processes domain events forwarded from the event bus.
// Reads go through the controller projections; events mostly just
// trigger a re-render and keep the scope cursor in sync.
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.CatalogLoadedEvent:
		m.loading = false
		m.loadErr = ""

	case eventbus.CatalogLoadFailedEvent:
		m.loading = false
		m.loadErr = fmt.Sprintf("could not load catalog: %v", e.Err)

	case eventbus.ResultsUpdatedEvent:
		// The recompute may have forced the scope back to All.
		m.scopeIdx = scopeIndex(m.ctrl.AvailableScopes(), e.Scope)
		m.clampSelection()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.ctrl.SetQueryText("")
			return m, nil
		}
		return m, tea.Quit

	case "tab":
		return m.cycleScope(1)

	case "shift+tab":
		return m.cycleScope(-1)

	case "up":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case "down":
		m.selectedIdx++
		m.clampSelection()
		return m, nil

	case "?":
		if m.input.Value() == "" && m.helpOps != nil {
			return m, m.showHelpCmd()
		}
	}

	// Everything else goes to the query input; the controller records
	// the text immediately and debounces the recompute itself.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQueryText(m.input.Value())
	return m, cmd
}

func (m *Model) cycleScope(dir int) (tea.Model, tea.Cmd) {
	scopes := m.ctrl.AvailableScopes()
	if len(scopes) == 0 {
		return m, nil
	}
	m.scopeIdx = (m.scopeIdx + dir + len(scopes)) % len(scopes)
	m.ctrl.SetScope(scopes[m.scopeIdx])
	return m, nil
}

func (m *Model) clampSelection() {
	n := len(m.ctrl.VisibleResults())
	if n == 0 {
		m.selectedIdx = 0
		return
	}
	if m.selectedIdx >= n {
		m.selectedIdx = n - 1
	}
}

func (m *Model) showHelpCmd() tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(RenderHelpContent())}
	}
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Dinegrip"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderScopes())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(" loading catalog…\n")
		return m.styles.Main.Render(b.String())
	}

	if m.loadErr != "" {
		b.WriteString(m.styles.StatusError.Render(m.loadErr))
		b.WriteString("\n")
	}

	if m.cfg.UISettings.ShowSuggestions {
		b.WriteString(m.renderSuggestions())
	}
	b.WriteString(m.renderResults())
	b.WriteString(m.renderStatus())

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderScopes() string {
	scopes := m.ctrl.AvailableScopes()
	parts := make([]string, 0, len(scopes))
	for i, s := range scopes {
		if i == m.scopeIdx {
			parts = append(parts, m.styles.ScopeActive.Render(s.Label()))
		} else {
			parts = append(parts, m.styles.ScopeInactive.Render(s.Label()))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderSuggestions() string {
	if !m.ctrl.IsSearching() {
		return ""
	}
	texts, restaurants := m.ctrl.Suggestions()
	if len(texts) == 0 && len(restaurants) == 0 {
		return ""
	}

	var b strings.Builder
	if len(texts) > 0 {
		b.WriteString(m.styles.Dim.Render("Suggestions: "))
		b.WriteString(m.styles.Suggestion.Render(strings.Join(texts, " · ")))
		b.WriteString("\n")
	}
	for _, r := range restaurants {
		b.WriteString(m.styles.Suggestion.Render("  → " + r.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderResults() string {
	results := m.ctrl.VisibleResults()
	if len(results) == 0 {
		if m.ctrl.IsSearching() {
			return m.styles.Dim.Render("no matches") + "\n"
		}
		return m.styles.Dim.Render("catalog is empty") + "\n"
	}

	var b strings.Builder
	for i, r := range results {
		line := fmt.Sprintf("%-30s %s", r.Title, m.styles.Cuisine.Render(r.Cuisine.Label()))
		if i == m.selectedIdx {
			line = m.styles.SelectionBg.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	results := m.ctrl.VisibleResults()
	status := fmt.Sprintf("%d restaurant(s)", len(results))
	if m.ctrl.IsSearching() {
		status += fmt.Sprintf(" · query %q", m.ctrl.Query())
	}
	status += " · tab scope · ? help · ctrl+c quit"
	return m.styles.Status.Render(status)
}

// scopeIndex finds the position of scope in scopes, defaulting to 0.
func scopeIndex(scopes []domain.Scope, scope domain.Scope) int {
	for i, s := range scopes {
		if s == scope {
			return i
		}
	}
	return 0
}
