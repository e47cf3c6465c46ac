// Package styles provides the lipgloss styles used for stagefmt's terminal output.
//
// Styles only add ANSI sequences. Whether they reach the terminal is decided
// by the writer: output is wrapped in a colorprofile.Writer, which strips or
// downsamples colors for pipes, dumb terminals and NO_COLOR.
package styles

import "charm.land/lipgloss/v2"

// Colors
var (
	Primary = lipgloss.Color("62")  // cyan/teal
	Success = lipgloss.Color("82")  // green
	Error   = lipgloss.Color("196") // red
	Muted   = lipgloss.Color("240") // dark gray
	Warning = lipgloss.Color("214") // orange
)

var (
	Bold         = lipgloss.NewStyle().Bold(true)
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
)
