package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title      lipgloss.Style
	Menu       lipgloss.Style
	MenuTitle  lipgloss.Style
	MenuItem   lipgloss.Style
	MenuCursor lipgloss.Style
	Confirm    lipgloss.Style
	Danger     lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
		MenuTitle: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),
		MenuItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		MenuCursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		Confirm: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2),
		Danger: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(0, 1),
		StatusErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1),
	}
}
