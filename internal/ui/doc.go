// Package ui renders styled terminal output for the wmediumctl tool.
//
// It provides lipgloss styles and a Printer for one-shot command
// results, a topology table renderer for the daemon's startup summary,
// and a Bubble Tea console for composing control requests
// interactively.
package ui
