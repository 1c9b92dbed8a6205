package eligibility

// Reasoning strings for the detailed strategy. Gross-test failure takes
// precedence when both tests fail.
const (
	reasonPassed      = "Household passed required income tests."
	reasonGrossFailed = "Household exceeds gross income limit."
	reasonNetFailed   = "Household exceeds net income limit after deductions."
)

// DetailedEstimator implements the full gross/net income test with
// itemized deductions and state-specific gross-limit percentages.
type DetailedEstimator struct{}

// Mode returns ModeDetailed.
func (DetailedEstimator) Mode() Mode { return ModeDetailed }

// Evaluate applies the detailed strategy:
//
//  1. FPL limits for household size, extrapolated past 8.
//  2. Effective gross limit scaled by the state's percentage over the
//     federal 130% baseline.
//  3. Gross test waived for elderly/disabled households; otherwise income
//     must not exceed the effective gross limit.
//  4. Net income after standard, dependent care, medical, and shelter
//     deductions must not exceed the base net limit (never state-scaled).
func (DetailedEstimator) Evaluate(profile HouseholdProfile) (*Verdict, error) {
	p, err := profile.normalized()
	if err != nil {
		return nil, err
	}

	grossBase, netLimit := fplLimits(p.HouseholdSize)
	pct := grossLimitPct(p.State)
	grossLimit := round2(grossBase * float64(pct) / float64(defaultGrossLimitPct))

	grossRequired := !p.ElderlyOrDisabled
	grossPassed := !grossRequired || p.MonthlyIncome <= grossLimit

	net, deductions := computeNetIncome(p)
	netPassed := net <= netLimit

	eligible := grossPassed && netPassed

	var reasoning string
	switch {
	case eligible:
		reasoning = reasonPassed
	case !grossPassed:
		reasoning = reasonGrossFailed
	default:
		reasoning = reasonNetFailed
	}

	return &Verdict{
		Eligible:  eligible,
		Reasoning: reasoning,
		GrossTest: TestResult{
			Required: grossRequired,
			Limit:    grossLimit,
			Actual:   p.MonthlyIncome,
			Passed:   grossPassed,
		},
		NetTest: TestResult{
			Required: true,
			Limit:    netLimit,
			Actual:   round2(net),
			Passed:   netPassed,
		},
		Deductions: deductions,
	}, nil
}

// computeNetIncome subtracts the standard, dependent care, medical, and
// shelter deductions from gross income. The running total is floored at
// zero after each step, and the shelter deduction is computed only on the
// income remaining after the other deductions and cannot exceed it.
func computeNetIncome(p HouseholdProfile) (float64, Deductions) {
	standard := float64(standardDeductionSmall)
	if p.HouseholdSize > 3 {
		standard = standardDeductionLarge
	}

	medical := 0.0
	if p.ElderlyOrDisabled && p.MedicalExpenses > medicalDisregard {
		medical = p.MedicalExpenses - medicalDisregard
	}

	remaining := p.MonthlyIncome
	remaining = floorZero(remaining - standard)
	remaining = floorZero(remaining - p.DependentCareCosts)
	remaining = floorZero(remaining - medical)

	shelter := floorZero(p.HousingCost - 0.5*remaining)
	if shelter > remaining {
		shelter = remaining
	}

	net := remaining - shelter

	return net, Deductions{
		Standard:      standard,
		DependentCare: p.DependentCareCosts,
		Medical:       medical,
		Shelter:       round2(shelter),
	}
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
