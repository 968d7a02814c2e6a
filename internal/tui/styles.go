// Package tui provides an interactive terminal editor for the docprep configuration.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#58A6FF"}
	muted  = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#6E7681"}
	good   = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	bad    = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	warn   = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}

	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	PathStyle     = lipgloss.NewStyle().Foreground(muted).MarginBottom(1)
	ActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	InactiveStyle = lipgloss.NewStyle()
	SummaryStyle  = lipgloss.NewStyle().Foreground(muted).PaddingLeft(4)
	EditedStyle   = lipgloss.NewStyle().Foreground(warn)
	SuccessStyle  = lipgloss.NewStyle().Foreground(good)
	ErrorStyle    = lipgloss.NewStyle().Foreground(bad)
	HelpStyle     = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	PromptStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warn).
			Padding(1, 2)
)

// formTheme returns the huh theme for the section forms
func formTheme(accessible bool) *huh.Theme {
	if accessible {
		return huh.ThemeBase()
	}
	return huh.ThemeCharm()
}
