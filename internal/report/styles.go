package report

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func indicator(ok bool) string {
	if ok {
		return successStyle.Render("✓")
	}
	return failureStyle.Render("✗")
}

// formatStatusName turns snake_case identifiers into title case.
func formatStatusName(s string) string {
	words := []rune(s)
	upper := true
	for i, r := range words {
		switch {
		case r == '_':
			words[i] = ' '
			upper = true
		case upper && r >= 'a' && r <= 'z':
			words[i] = r - 'a' + 'A'
			upper = false
		default:
			upper = false
		}
	}
	return string(words)
}
