// Package cli implements the terminal front end of bigcalc: result and
// batch display, progress reporting, the interactive REPL and shell
// completion scripts.
package cli
