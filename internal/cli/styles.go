// Package cli provides styled terminal output for the capture commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#7D56F4")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1D3"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

// FolderIcon prefixes the provisioning summary.
const FolderIcon = "🗂️"

const (
	captureIcon = "🎙️"
	robotIcon   = "🤖"
	linkIcon    = "🔗"
)

// FormatSuccess renders a ✓-prefixed success line.
func FormatSuccess(message string) string {
	return successStyle.Render("✓ " + message)
}

// FormatError renders a ✗-prefixed error line.
func FormatError(message string) string {
	return errorStyle.Render("✗ " + message)
}

// FormatWarning renders a warning line.
func FormatWarning(message string) string {
	return warningStyle.Render("⚠️ " + message)
}

// FormatInfo renders an informational line.
func FormatInfo(message string) string {
	return infoStyle.Render("ℹ️ " + message)
}

// FormatTitle renders a command heading.
func FormatTitle(title string) string {
	return titleStyle.Render(captureIcon + " " + title)
}

// RenderBox draws content under a title inside a rounded border.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.UnsetMargins().Render(title),
		content,
	))
}
