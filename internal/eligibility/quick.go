package eligibility

// Reasoning strings for the quick strategy.
const (
	reasonQuickEligible    = "Monthly income is within the quick-screen gross income limit."
	reasonQuickNotEligible = "Monthly income exceeds the quick-screen gross income limit."
)

// QuickEstimator implements the simplified gross-income screen. It derives
// monthly limits from the yearly poverty guidelines for the state's region,
// applies a flat state multiplier, ignores itemized deductions, and
// produces an estimated monthly benefit.
type QuickEstimator struct{}

// Mode returns ModeQuick.
func (QuickEstimator) Mode() Mode { return ModeQuick }

// Evaluate applies the quick strategy. The elderly/disabled flag and
// deduction fields are ignored; the estimate is a screen, not a
// determination.
func (QuickEstimator) Evaluate(profile HouseholdProfile) (*Verdict, error) {
	p, err := profile.normalized()
	if err != nil {
		return nil, err
	}

	region := guidelineRegion(p.State)
	guideline := povertyGuidelines2025[region]
	yearly := guideline.Base + guideline.AdditionalPerson*float64(p.HouseholdSize-1)

	multiplier := defaultQuickMultiplier
	if m, ok := quickGrossMultiplier[p.State]; ok {
		multiplier = m
	}

	grossLimit := round2(yearly * multiplier / 12)
	netLimit := round2(yearly / 12)

	likely := p.MonthlyIncome <= grossLimit
	allotment := maxAllotment(p.HouseholdSize)

	benefit := 0.0
	if likely {
		benefit = round2(floorZero(allotment - 0.3*p.MonthlyIncome))
		if p.HouseholdSize <= 2 && benefit > 0 && benefit < minimumBenefit {
			benefit = minimumBenefit
		}
	}

	reasoning := reasonQuickNotEligible
	if likely {
		reasoning = reasonQuickEligible
	}

	return &Verdict{
		Eligible:  likely,
		Reasoning: reasoning,
		GrossTest: TestResult{
			Required: true,
			Limit:    grossLimit,
			Actual:   p.MonthlyIncome,
			Passed:   likely,
		},
		NetTest: TestResult{
			Required: false,
			Limit:    netLimit,
			Actual:   p.MonthlyIncome,
			Passed:   likely,
		},
		Benefit: &BenefitEstimate{
			LikelyEligible:          likely,
			MaxMonthlyAllotment:     allotment,
			EstimatedMonthlyBenefit: benefit,
			StateGrossMultiplier:    multiplier,
			Region:                  region,
			YearlyPovertyLine:       yearly,
		},
	}, nil
}
