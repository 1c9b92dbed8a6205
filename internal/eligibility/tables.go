package eligibility

// Static reference data for both estimation strategies. Loaded once as
// package-level immutable tables; never recomputed per request.

// Monthly net income limits (100% of the federal poverty level) by
// household size, FY 2025.
var fplNetLimit = map[int]float64{
	1: 1305, 2: 1763, 3: 2221, 4: 2680,
	5: 3138, 6: 3596, 7: 4055, 8: 4513,
}

// Monthly gross income limits at the federal 130% baseline by household
// size, FY 2025.
var fplGrossBase = map[int]float64{
	1: 1696, 2: 2292, 3: 2888, 4: 3483,
	5: 4079, 6: 4675, 7: 5271, 8: 5867,
}

// Per-additional-person monthly increments for households larger than 8.
const (
	grossIncrement = 596
	netIncrement   = 459
)

// Deduction constants for the detailed strategy.
const (
	standardDeductionSmall = 209 // household size <= 3
	standardDeductionLarge = 257 // household size > 3
	medicalDisregard       = 35  // excess medical deduction threshold
)

// stateGrossLimitPct holds each state's gross income limit as a percentage
// of the poverty level. Broad-based categorical eligibility raises this
// above the federal 130% baseline in most jurisdictions. States and
// territories not listed default to 130.
var stateGrossLimitPct = map[string]int{
	"AL": 130, "AK": 200, "AZ": 185, "AR": 130,
	"CA": 200, "CO": 200, "CT": 200, "DE": 200,
	"DC": 200, "FL": 200, "GA": 130, "HI": 200,
	"ID": 130, "IL": 165, "IN": 130, "IA": 160,
	"KS": 130, "KY": 200, "LA": 200, "ME": 200,
	"MD": 200, "MA": 200, "MI": 200, "MN": 200,
	"MS": 130, "MO": 200, "MT": 200, "NE": 165,
	"NV": 200, "NH": 200, "NJ": 185, "NM": 200,
	"NY": 200, "NC": 200, "ND": 200, "OH": 130,
	"OK": 130, "OR": 200, "PA": 200, "RI": 185,
	"SC": 130, "SD": 130, "TN": 130, "TX": 165,
	"UT": 130, "VT": 185, "VA": 200, "WA": 200,
	"WV": 200, "WI": 200, "WY": 130,
}

const defaultGrossLimitPct = 130

// Guideline regions for the quick strategy. Alaska and Hawaii have their
// own poverty guidelines; everything else uses the contiguous table.
const (
	RegionContiguous = "CONTIGUOUS"
	RegionAlaska     = "AK"
	RegionHawaii     = "HI"
)

// yearlyGuideline holds the 2025 poverty guideline for a one-person
// household and the per-additional-person yearly increment.
type yearlyGuideline struct {
	Base             float64
	AdditionalPerson float64
}

var povertyGuidelines2025 = map[string]yearlyGuideline{
	RegionContiguous: {Base: 15650, AdditionalPerson: 5550},
	RegionAlaska:     {Base: 19550, AdditionalPerson: 6870},
	RegionHawaii:     {Base: 17990, AdditionalPerson: 6320},
}

// quickGrossMultiplier lists states using a 200% gross income gate for the
// quick screen. States not listed use the federal 1.30 baseline.
var quickGrossMultiplier = map[string]float64{
	"CA": 2.0, "CO": 2.0, "CT": 2.0, "DC": 2.0, "HI": 2.0,
	"MA": 2.0, "MD": 2.0, "ME": 2.0, "MN": 2.0, "NH": 2.0,
	"NJ": 2.0, "NM": 2.0, "NY": 2.0, "OR": 2.0, "PA": 2.0,
	"RI": 2.0, "VA": 2.0, "WA": 2.0, "WI": 2.0,
}

const defaultQuickMultiplier = 1.30

// Maximum monthly allotments by household size, FY 2025.
var maxMonthlyAllotment = map[int]float64{
	1: 292, 2: 536, 3: 768, 4: 975,
	5: 1158, 6: 1390, 7: 1536, 8: 1756,
}

const (
	additionalMemberAllotment = 220
	// minimumBenefit is the floor for 1-2 person households whose computed
	// benefit is positive but below this amount.
	minimumBenefit = 23
)

// fplLimits returns the monthly gross base and net limit for a household
// size. Sizes above 8 extrapolate linearly from the size-8 values.
func fplLimits(size int) (grossBase, netLimit float64) {
	clamped := size
	if clamped > 8 {
		clamped = 8
	}
	grossBase = fplGrossBase[clamped]
	netLimit = fplNetLimit[clamped]

	if size > 8 {
		extra := float64(size - 8)
		grossBase += extra * grossIncrement
		netLimit += extra * netIncrement
	}
	return grossBase, netLimit
}

// grossLimitPct returns the state's tabulated gross-limit percentage,
// defaulting to the federal 130% baseline.
func grossLimitPct(state string) int {
	if pct, ok := stateGrossLimitPct[state]; ok {
		return pct
	}
	return defaultGrossLimitPct
}

// guidelineRegion maps a state to its poverty guideline region.
func guidelineRegion(state string) string {
	switch state {
	case "AK":
		return RegionAlaska
	case "HI":
		return RegionHawaii
	default:
		return RegionContiguous
	}
}

// maxAllotment returns the maximum monthly allotment for a household size,
// extrapolating linearly past 8.
func maxAllotment(size int) float64 {
	if size <= 8 {
		return maxMonthlyAllotment[size]
	}
	return maxMonthlyAllotment[8] + float64(size-8)*additionalMemberAllotment
}
