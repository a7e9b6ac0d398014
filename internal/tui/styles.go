package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	nearStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)

	filledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	articleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#69B1FF"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#69B1FF")).Underline(true)
	strikeStyle  = badStyle.Strikethrough(true)

	panelStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	flashStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FAAD14"))
)

func choice(label string, selected bool) string {
	if selected {
		return accentStyle.Render("› ") + selectedStyle.Render(label)
	}
	return "  " + subtleStyle.Render(label)
}
