package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/docprep/internal/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestModel_SaveWritesConfig(t *testing.T) {
	var saved *config.Config
	m := NewModel(Options{
		Config:   defaultTestConfig(t),
		SaveFunc: func(cfg *config.Config) error { saved = cfg; return nil },
	})

	m, _ = press(t, m, "s")

	require.NotNil(t, saved)
	assert.Equal(t, stateSaved, m.state)
	assert.Equal(t, config.DefaultWorkers, saved.Concurrency.Workers)
	assert.Contains(t, m.View(), "Configuration saved")
}

func TestModel_SaveRejectsInvalidValues(t *testing.T) {
	called := false
	m := NewModel(Options{
		Config:   defaultTestConfig(t),
		SaveFunc: func(*config.Config) error { called = true; return nil },
	})
	m.values.GitTimeout = "eventually"

	m, _ = press(t, m, "s")

	assert.False(t, called)
	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "git.timeout")
}

func TestModel_OpenAndLeaveCategoryForm(t *testing.T) {
	m := NewModel(Options{Config: defaultTestConfig(t)})

	m, _ = press(t, m, "down", "enter")
	assert.Equal(t, stateForm, m.state)
	require.NotNil(t, m.form)

	m, _ = press(t, m, "esc")
	assert.Equal(t, stateMenu, m.state)
}

func TestModel_QuitWithUnsavedChangesAsksForConfirmation(t *testing.T) {
	m := NewModel(Options{Config: defaultTestConfig(t)})
	m.edited["git"] = true

	m, _ = press(t, m, "q")
	assert.Equal(t, stateConfirm, m.state)

	m, _ = press(t, m, "c")
	assert.Equal(t, stateMenu, m.state)
}

func TestModel_QuitWhenClean(t *testing.T) {
	m := NewModel(Options{Config: defaultTestConfig(t)})

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_MenuListsCategories(t *testing.T) {
	m := NewModel(Options{Config: defaultTestConfig(t), Path: "/etc/docprep.yaml"})
	m.edited["storage"] = true

	view := m.View()
	for _, name := range GetCategoryNames() {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "/etc/docprep.yaml")
	assert.Contains(t, view, "(edited)")
	assert.Contains(t, view, "index on")
}

func TestSummary(t *testing.T) {
	values := &ConfigValues{Workers: "", LogLevel: "debug", LogFormat: "json", RequireExisting: true}

	assert.Equal(t, "default workers", Summary("concurrency", values))
	assert.Equal(t, "debug, json", Summary("logging", values))
	assert.Equal(t, "require existing directory", Summary("prepare", values))
	assert.Empty(t, Summary("unknown", values))
}
