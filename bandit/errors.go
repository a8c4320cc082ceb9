package bandit

import "errors"

var (
	// ErrInvalidConfiguration is returned for non-positive arm counts and malformed arm profiles.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDivisionUndefined is returned when an average over zero pulls is requested.
	ErrDivisionUndefined = errors.New("division undefined")

	// ErrInsufficientBudget is returned when a policy cannot explore every arm within its pull budget.
	ErrInsufficientBudget = errors.New("insufficient budget")
)
