package eligibility

import (
	"fmt"
	"math"
)

// Mode identifies an estimation strategy.
type Mode string

const (
	// ModeDetailed runs the full gross/net income test with itemized
	// deductions and state gross-limit percentages.
	ModeDetailed Mode = "detailed"
	// ModeQuick runs the simplified gross-income screen with a benefit
	// estimate derived from yearly poverty guidelines.
	ModeQuick Mode = "quick"
)

// Estimator evaluates a household profile against one estimation strategy.
// Implementations are pure functions over static tables: no I/O, no shared
// mutable state, safe for concurrent use.
type Estimator interface {
	Mode() Mode
	Evaluate(profile HouseholdProfile) (*Verdict, error)
}

// ForMode returns the estimator for a strategy name.
func ForMode(mode Mode) (Estimator, error) {
	switch mode {
	case ModeDetailed, "":
		return DetailedEstimator{}, nil
	case ModeQuick:
		return QuickEstimator{}, nil
	default:
		return nil, fmt.Errorf("unknown estimator mode %q", mode)
	}
}

// TestResult describes one income test inside a verdict.
type TestResult struct {
	Required bool    `json:"required"`
	Limit    float64 `json:"limit"`
	Actual   float64 `json:"actual"`
	Passed   bool    `json:"passed"`
}

// Deductions itemizes the amounts subtracted when computing net income.
type Deductions struct {
	Standard      float64 `json:"standard"`
	DependentCare float64 `json:"dependent_care"`
	Medical       float64 `json:"medical"`
	Shelter       float64 `json:"shelter"`
}

// BenefitEstimate carries the quick strategy's extra outputs.
type BenefitEstimate struct {
	LikelyEligible          bool    `json:"likely_eligible"`
	MaxMonthlyAllotment     float64 `json:"max_monthly_allotment"`
	EstimatedMonthlyBenefit float64 `json:"estimated_monthly_benefit"`
	StateGrossMultiplier    float64 `json:"state_gross_multiplier"`
	Region                  string  `json:"region"`
	YearlyPovertyLine       float64 `json:"yearly_poverty_line"`
}

// Verdict is the structured outcome of an eligibility evaluation.
// Benefit is populated by the quick strategy only.
type Verdict struct {
	Eligible   bool             `json:"eligible"`
	Reasoning  string           `json:"reasoning"`
	GrossTest  TestResult       `json:"gross_test"`
	NetTest    TestResult       `json:"net_test"`
	Deductions Deductions       `json:"deductions"`
	Benefit    *BenefitEstimate `json:"benefit,omitempty"`
}

// Evaluate runs the canonical detailed strategy.
func Evaluate(profile HouseholdProfile) (*Verdict, error) {
	return DetailedEstimator{}.Evaluate(profile)
}

// QuickEvaluate runs the simplified quick-estimate strategy.
func QuickEvaluate(profile HouseholdProfile) (*Verdict, error) {
	return QuickEstimator{}.Evaluate(profile)
}

// round2 rounds to two decimal places for currency amounts.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
