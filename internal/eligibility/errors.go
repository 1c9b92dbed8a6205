package eligibility

import "fmt"

// InvalidStateError indicates the state token could not be resolved to a
// known US state or territory abbreviation.
type InvalidStateError struct {
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %q: must be a US state name or 2-letter abbreviation", e.State)
}

// InvalidHouseholdSizeError indicates a household size below 1.
type InvalidHouseholdSizeError struct {
	Size int
}

func (e *InvalidHouseholdSizeError) Error() string {
	return fmt.Sprintf("invalid household size %d: must be at least 1", e.Size)
}

// InvalidAmountError indicates a negative income or deduction input.
type InvalidAmountError struct {
	Field  string
	Amount float64
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid %s %.2f: must be non-negative", e.Field, e.Amount)
}
