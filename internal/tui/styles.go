// ABOUTME: Lipgloss styles for the interactive memo browser.
// ABOUTME: ANSI palette colors so the terminal theme decides the shades.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	groupStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	noTagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	confirmStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(0, 1)
)
