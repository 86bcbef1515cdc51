package calculation

import "errors"

// Error classes returned by the calculators. Callers discriminate with
// errors.Is; the wrapped message carries the human-readable detail.
var (
	// ErrInvalidInput marks a loan that fails validation before any
	// scheduling work. Fix the input and retry.
	ErrInvalidInput = errors.New("invalid loan input")

	// ErrInfeasible marks a calculation that cannot produce a schedule,
	// such as an early payment larger than everything still owed.
	ErrInfeasible = errors.New("infeasible calculation")
)
