package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#282A36")).
			Background(lipgloss.Color("#BD93F9")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Padding(0, 1)
)

// ink is the style class of a canvas cell
type ink int

const (
	inkNone ink = iota
	inkGrid
	inkFaded
	inkPath
	inkNode
	inkStart
	inkEnd
	inkEndDim
	inkCurrent
	inkCursor
)

var inkStyles = map[ink]lipgloss.Style{
	inkGrid:    lipgloss.NewStyle().Foreground(lipgloss.Color("#44475A")),
	inkFaded:   lipgloss.NewStyle().Foreground(lipgloss.Color("#44475A")),
	inkPath:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")),
	inkNode:    lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")),
	inkStart:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50FA7B")),
	inkEnd:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555")),
	inkEndDim:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")),
	inkCurrent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F1FA8C")),
	inkCursor:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#282A36")).Background(lipgloss.Color("#FF79C6")),
}
