package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	spinnerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusRunStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	logBorderStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	startButtonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 2)
	startFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("205")).Padding(0, 2)
)
