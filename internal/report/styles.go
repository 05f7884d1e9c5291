package report

import "github.com/charmbracelet/lipgloss"

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#446644")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#88ff88"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#668866"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#889988")).
			Width(16)

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	Good = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	Bad  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)
