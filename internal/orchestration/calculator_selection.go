package orchestration

import (
	"github.com/agbru/bigcalc/internal/calc"
)

// GetCalculatorsToRun determines which calculators should be executed for
// a width selection. "all" returns every registered calculator in
// alphabetically sorted order for consistent, reproducible behavior.
//
// Parameters:
//   - width: A calculator name or "all".
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []calc.Calculator: The calculators to execute, empty for an unknown name.
func GetCalculatorsToRun(width string, factory calc.CalculatorFactory) []calc.Calculator {
	if width == "all" {
		return factory.GetAll()
	}
	if c, err := factory.Get(width); err == nil {
		return []calc.Calculator{c}
	}
	return nil
}
