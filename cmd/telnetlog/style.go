package main

import "github.com/charmbracelet/lipgloss/v2"

// Styles for the lines telnetlog prints for each Sink/NegSink event. Kept
// as package-level values rather than recomputed per line, matching the
// usual lipgloss pattern of defining a style once and calling Render many
// times.
var (
	styleData      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	styleExecute   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleIAC       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	styleNegotiate = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleSub       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleSession   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
)
