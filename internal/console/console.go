// Package console renders operator-facing status lines for the opsctl
// subcommands. Formatting is stateless: every function takes a message and
// returns a styled string, so there is no shared palette to mutate.
package console

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Level classifies a console line.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func prefix(level Level) string {
	switch level {
	case LevelSuccess:
		return "[ OK ]"
	case LevelWarning:
		return "[WARN]"
	case LevelError:
		return "[FAIL]"
	default:
		return "[INFO]"
	}
}

// Format returns a single styled status line for the given level.
func Format(level Level, msg string) string {
	line := fmt.Sprintf("%s %s", prefix(level), msg)
	switch level {
	case LevelSuccess:
		return successStyle.Render(line)
	case LevelWarning:
		return warningStyle.Render(line)
	case LevelError:
		return errorStyle.Render(line)
	default:
		return infoStyle.Render(line)
	}
}

// Formatf is Format with Sprintf-style arguments.
func Formatf(level Level, format string, args ...any) string {
	return Format(level, fmt.Sprintf(format, args...))
}

// Header renders a section header for a script phase.
func Header(title string) string {
	return headerStyle.Render("== " + title + " ==")
}

// Detail renders secondary, indented detail text under a status line.
func Detail(msg string) string {
	return mutedStyle.Render("       " + msg)
}
