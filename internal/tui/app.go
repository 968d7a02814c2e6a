package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/docprep/internal/config"
)

type state int

const (
	stateMenu state = iota
	stateForm
	stateConfirm
	stateSaved
	stateError
)

// Options configures the editor
type Options struct {
	Config *config.Config
	// Path is shown in the header; SaveFunc decides where the result goes
	Path       string
	SaveFunc   func(*config.Config) error
	Accessible bool
}

// Model is the bubbletea model of the editor
type Model struct {
	opts   Options
	values *ConfigValues
	state  state
	cursor int
	form   *huh.Form
	edited map[string]bool
	err    error
}

func NewModel(opts Options) Model {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	return Model{
		opts:   opts,
		values: FromConfig(opts.Config),
		edited: make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) dirty() bool {
	return len(m.edited) > 0
}

// saveIndex is the cursor position of the save entry below the categories
func saveIndex() int {
	return len(Categories)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.onMenuKey(key)
		case stateConfirm:
			return m.onConfirmKey(key)
		case stateSaved, stateError:
			return m, tea.Quit
		case stateForm:
			if key.Type == tea.KeyEsc {
				m.state = stateMenu
				m.form = nil
				return m, nil
			}
		}
	}
	if m.state == stateForm && m.form != nil {
		return m.forwardToForm(msg)
	}
	return m, nil
}

func (m Model) forwardToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.edited[Categories[m.cursor].ID] = true
		m.state = stateMenu
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) onMenuKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < saveIndex() {
			m.cursor++
		}
	case "s":
		return m.save()
	case "enter":
		if m.cursor == saveIndex() {
			return m.save()
		}
		return m.openForm()
	case "q", "esc", "ctrl+c":
		if m.dirty() {
			m.state = stateConfirm
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	form := GetFormForCategory(Categories[m.cursor].ID, m.values)
	if form == nil {
		return m, nil
	}
	m.form = form.WithTheme(formTheme(m.opts.Accessible)).WithAccessible(m.opts.Accessible)
	m.state = stateForm
	return m, m.form.Init()
}

func (m Model) onConfirmKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(key.String()) {
	case "y":
		return m.save()
	case "n":
		return m, tea.Quit
	case "c", "esc":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err == nil && m.opts.SaveFunc != nil {
		err = m.opts.SaveFunc(cfg)
	}
	if err != nil {
		m.state = stateError
		m.err = err
		return m, nil
	}
	m.state = stateSaved
	m.edited = make(map[string]bool)
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("docprep configuration"))
	b.WriteString("\n")
	if m.opts.Path != "" {
		b.WriteString(PathStyle.Render(m.opts.Path))
	}
	b.WriteString("\n")

	switch m.state {
	case stateMenu:
		m.viewMenu(&b)
	case stateForm:
		b.WriteString(m.form.View())
	case stateConfirm:
		b.WriteString(PromptStyle.Render("Unsaved changes.\n\nSave before quitting?\n\n[y] save  [n] discard  [c] cancel"))
	case stateSaved:
		b.WriteString(SuccessStyle.Render("Configuration saved."))
		b.WriteString("\n\nPress any key to exit.")
	case stateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\nPress any key to exit.")
	}
	return b.String()
}

func (m Model) viewMenu(b *strings.Builder) {
	for i, cat := range Categories {
		style, marker := InactiveStyle, "  "
		if i == m.cursor {
			style, marker = ActiveStyle, "> "
		}
		b.WriteString(style.Render(marker + cat.Name))
		if m.edited[cat.ID] {
			b.WriteString(EditedStyle.Render(" (edited)"))
		}
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(SummaryStyle.Render(cat.Description + ": " + Summary(cat.ID, m.values)))
			b.WriteString("\n")
		}
	}

	style, marker := InactiveStyle, "  "
	if m.cursor == saveIndex() {
		style, marker = ActiveStyle, "> "
	}
	b.WriteString("\n")
	b.WriteString(style.Render(marker + "Save"))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("up/down move, enter open, s save, q quit"))
}

// Run starts the editor on the alternate screen
func Run(opts Options) error {
	_, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	return err
}
