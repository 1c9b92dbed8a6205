package speech

import (
	"fmt"
	"strings"

	"github.com/jonathan/benefind/internal/eligibility"
)

// BuildVerdictScript renders a verdict as a short script suitable for
// text-to-speech: no symbols, amounts spoken as whole dollars.
func BuildVerdictScript(verdict *eligibility.Verdict, profile eligibility.HouseholdProfile) string {
	var sb strings.Builder

	if verdict.Eligible {
		sb.WriteString(fmt.Sprintf(
			"Based on what you told me, a household of %s in %s looks likely eligible for SNAP benefits. ",
			spokenCount(profile.HouseholdSize), spokenState(profile.State)))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Based on what you told me, a household of %s in %s does not appear to qualify for SNAP benefits. ",
			spokenCount(profile.HouseholdSize), spokenState(profile.State)))
		switch {
		case !verdict.GrossTest.Passed && verdict.GrossTest.Required:
			sb.WriteString("Your monthly income is above the gross income limit. ")
		case !verdict.NetTest.Passed:
			sb.WriteString("Your income after deductions is above the net income limit. ")
		}
	}

	if verdict.Benefit != nil && verdict.Benefit.EstimatedMonthlyBenefit > 0 {
		sb.WriteString(fmt.Sprintf(
			"Your estimated benefit is about %d dollars per month. ",
			int(verdict.Benefit.EstimatedMonthlyBenefit)))
	}

	sb.WriteString("Keep in mind this is an estimate. Only your state agency can make a final decision.")
	return sb.String()
}

// spokenCount renders small household sizes as words.
var countWords = []string{"", "one person", "two people", "three people",
	"four people", "five people", "six people", "seven people", "eight people"}

func spokenCount(size int) string {
	if size >= 1 && size < len(countWords) {
		return countWords[size]
	}
	return fmt.Sprintf("%d people", size)
}

// spokenState expands a state code so the voice does not spell it out.
func spokenState(code string) string {
	if name, ok := stateNames[code]; ok {
		return name
	}
	return code
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "the District of Columbia", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana",
	"IA": "Iowa", "KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana",
	"ME": "Maine", "MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan",
	"MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri", "MT": "Montana",
	"NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina",
	"ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon",
	"PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}
