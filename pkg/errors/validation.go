package errors

import (
	"unicode"
)

// Limits applied to user-supplied values before any search runs.
const (
	MaxLocationIDLength = 64
	MaxBudget           = 1 << 16
	MaxRate             = 1 << 30
	MaxWorkers          = 1024
)

// ValidateLocationID checks that id is usable as a location identifier in
// every input format: non-empty, bounded, and free of whitespace, control
// characters and the separators used by the text format.
func ValidateLocationID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "location id cannot be empty")
	}
	if len(id) > MaxLocationIDLength {
		return New(ErrCodeInvalidInput, "location id too long (max %d characters)", MaxLocationIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "location id %q contains whitespace or control characters", id)
		}
		if r == ',' || r == ';' || r == '=' {
			return New(ErrCodeInvalidInput, "location id %q contains separator %q", id, r)
		}
	}
	return nil
}

// ValidateBudget checks a time budget flag.
func ValidateBudget(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidOptions, "%s cannot be negative (got %d)", name, v)
	}
	if v > MaxBudget {
		return New(ErrCodeInvalidOptions, "%s too large (max %d)", name, MaxBudget)
	}
	return nil
}

// ValidateWorkers checks a worker count. Zero means "use the default".
func ValidateWorkers(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidOptions, "workers cannot be negative (got %d)", n)
	}
	if n > MaxWorkers {
		return New(ErrCodeInvalidOptions, "too many workers (max %d)", MaxWorkers)
	}
	return nil
}
