// Package ui provides theme and color support for bigcalc's terminal output.
// It defines the color schemes, the ANSI helpers the CLI prints with, and the
// lipgloss styles used for the REPL banner and section headers.
package ui
