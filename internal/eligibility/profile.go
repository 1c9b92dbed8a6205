// Package eligibility implements SNAP eligibility estimation: a pure,
// deterministic calculation from household facts and static policy tables
// to a structured verdict. Two strategies exist, a detailed gross/net test
// with itemized deductions and a quick gross-income screen with a benefit
// estimate; callers select one explicitly.
package eligibility

import (
	"github.com/jonathan/benefind/internal/usstate"
)

// HouseholdProfile holds the financial facts for one household. A profile
// is built per request, evaluated once, and discarded. Household size and
// monthly income are required; deduction fields default to zero.
type HouseholdProfile struct {
	State              string  `json:"state"`
	HouseholdSize      int     `json:"household_size"`
	MonthlyIncome      float64 `json:"monthly_income"`
	ElderlyOrDisabled  bool    `json:"elderly_or_disabled"`
	MedicalExpenses    float64 `json:"medical_expenses"`
	DependentCareCosts float64 `json:"dependent_care_costs"`
	HousingCost        float64 `json:"housing_cost"`
}

// normalized validates the profile and returns a copy with the state
// resolved to its two-letter abbreviation. Validation failures surface as
// typed errors before any table lookup happens.
func (p HouseholdProfile) normalized() (HouseholdProfile, error) {
	if p.HouseholdSize < 1 {
		return p, &InvalidHouseholdSizeError{Size: p.HouseholdSize}
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"monthly income", p.MonthlyIncome},
		{"medical expenses", p.MedicalExpenses},
		{"dependent care costs", p.DependentCareCosts},
		{"housing cost", p.HousingCost},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return p, &InvalidAmountError{Field: a.field, Amount: a.value}
		}
	}

	state, err := usstate.NormalizeState(p.State)
	if err != nil {
		return p, &InvalidStateError{State: p.State}
	}
	p.State = state

	return p, nil
}
