package styles

import "github.com/charmbracelet/lipgloss"

// Panel returns the bordered style shared by the queue and player panels.
func Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(T().Border)
}
