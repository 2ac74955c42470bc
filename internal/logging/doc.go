// Package logging provides the logging interface used across bigcalc.
// Components log through Logger with structured Field values; the zerolog
// adapter backs the CLI and the server, and the standard library adapter is
// kept for callers that already own a *log.Logger.
package logging
