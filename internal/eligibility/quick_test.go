package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quickEvaluate(t *testing.T, p HouseholdProfile) *Verdict {
	t.Helper()
	v, err := QuickEvaluate(p)
	require.NoError(t, err)
	require.NotNil(t, v.Benefit)
	return v
}

func TestQuickEvaluate_ContiguousLimits(t *testing.T) {
	// Texas, size 3: yearly line 15650 + 2*5550 = 26750. Texas is not in
	// the 200% set, so the screen uses the 1.30 baseline.
	v := quickEvaluate(t, HouseholdProfile{State: "TX", HouseholdSize: 3, MonthlyIncome: 1000})

	assert.Equal(t, RegionContiguous, v.Benefit.Region)
	assert.Equal(t, 26750.0, v.Benefit.YearlyPovertyLine)
	assert.Equal(t, 1.30, v.Benefit.StateGrossMultiplier)
	assert.Equal(t, round2(26750*1.30/12), v.GrossTest.Limit)
	assert.Equal(t, round2(26750.0/12), v.NetTest.Limit)
}

func TestQuickEvaluate_AlaskaAndHawaiiRegions(t *testing.T) {
	ak := quickEvaluate(t, HouseholdProfile{State: "AK", HouseholdSize: 1, MonthlyIncome: 1000})
	assert.Equal(t, RegionAlaska, ak.Benefit.Region)
	assert.Equal(t, 19550.0, ak.Benefit.YearlyPovertyLine)

	hi := quickEvaluate(t, HouseholdProfile{State: "HI", HouseholdSize: 1, MonthlyIncome: 1000})
	assert.Equal(t, RegionHawaii, hi.Benefit.Region)
	assert.Equal(t, 17990.0, hi.Benefit.YearlyPovertyLine)
}

func TestQuickEvaluate_ExpandedStateMultiplier(t *testing.T) {
	v := quickEvaluate(t, HouseholdProfile{State: "NY", HouseholdSize: 2, MonthlyIncome: 1000})
	assert.Equal(t, 2.0, v.Benefit.StateGrossMultiplier)
}

func TestQuickEvaluate_BenefitComputation(t *testing.T) {
	// Size 4, income 2000: allotment 975, benefit = 975 - 600 = 375.
	v := quickEvaluate(t, HouseholdProfile{State: "TX", HouseholdSize: 4, MonthlyIncome: 2000})
	require.True(t, v.Benefit.LikelyEligible)
	assert.Equal(t, 975.0, v.Benefit.MaxMonthlyAllotment)
	assert.Equal(t, 375.0, v.Benefit.EstimatedMonthlyBenefit)
}

func TestQuickEvaluate_MinimumBenefitFloor(t *testing.T) {
	// Size 1, income 940: raw benefit = 292 - 282 = 10, below the $23
	// floor, so the floored minimum applies.
	v := quickEvaluate(t, HouseholdProfile{State: "TX", HouseholdSize: 1, MonthlyIncome: 940})
	require.True(t, v.Benefit.LikelyEligible)
	assert.Equal(t, float64(minimumBenefit), v.Benefit.EstimatedMonthlyBenefit)
}

func TestQuickEvaluate_NoFloorForLargerHouseholds(t *testing.T) {
	// Size 3, income 2540: raw benefit = 768 - 762 = 6. No floor above
	// two-person households.
	v := quickEvaluate(t, HouseholdProfile{State: "TX", HouseholdSize: 3, MonthlyIncome: 2540})
	require.True(t, v.Benefit.LikelyEligible)
	assert.Equal(t, 6.0, v.Benefit.EstimatedMonthlyBenefit)
}

func TestQuickEvaluate_NotEligibleZeroBenefit(t *testing.T) {
	v := quickEvaluate(t, HouseholdProfile{State: "TX", HouseholdSize: 1, MonthlyIncome: 50000})
	assert.False(t, v.Eligible)
	assert.False(t, v.Benefit.LikelyEligible)
	assert.Equal(t, 0.0, v.Benefit.EstimatedMonthlyBenefit)
}

func TestQuickEvaluate_AllotmentExtrapolationPast8(t *testing.T) {
	v := quickEvaluate(t, HouseholdProfile{State: "TX", HouseholdSize: 10, MonthlyIncome: 1000})
	assert.Equal(t, maxMonthlyAllotment[8]+2*additionalMemberAllotment, v.Benefit.MaxMonthlyAllotment)
}

func TestQuickEvaluate_ValidationMatchesDetailed(t *testing.T) {
	_, err := QuickEvaluate(HouseholdProfile{State: "Atlantis", HouseholdSize: 1, MonthlyIncome: 100})
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	_, err = QuickEvaluate(HouseholdProfile{State: "TX", HouseholdSize: 0, MonthlyIncome: 100})
	var sizeErr *InvalidHouseholdSizeError
	assert.ErrorAs(t, err, &sizeErr)
}
