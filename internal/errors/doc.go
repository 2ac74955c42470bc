// Package apperrors classifies bigcalc failures and maps them to exit codes.
//
// Kernel sentinels reach callers wrapped in CalculationError, which unwraps
// to the sentinel so errors.Is keeps working. Input problems are a
// ValidationError or, for oversized requests, a LimitError.
package apperrors
