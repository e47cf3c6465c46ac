package styles

import (
	"fmt"
	"strings"
	"time"
)

// Status symbols
const (
	SymbolOK      = "✓"
	SymbolFailed  = "✗"
	SymbolSkipped = "○"
	SymbolDryRun  = "»"
)

// OK renders a finished task line.
func OK(name string, files int, d time.Duration) string {
	return SuccessStyle.Render(SymbolOK) + " " + Bold.Render(name) +
		MutedStyle.Render(fmt.Sprintf(" (%s, %s)", pluralFiles(files), d.Round(time.Millisecond)))
}

// Failed renders a failed task line.
func Failed(name string, err error) string {
	return ErrorStyle.Render(SymbolFailed) + " " + Bold.Render(name) + " " + ErrorStyle.Render(err.Error())
}

// Skipped renders a task that had no files left after filtering.
func Skipped(name string) string {
	return MutedStyle.Render(SymbolSkipped + " " + name + " (no files)")
}

// DryRun renders the command a task would run.
func DryRun(name, command string) string {
	return WarningStyle.Render(SymbolDryRun) + " " + Bold.Render(name) + ": " + command
}

// Indent prefixes every line of s with two spaces, for command output
// printed under a status line.
func Indent(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	return "  " + strings.ReplaceAll(s, "\n", "\n  ") + "\n"
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
