// Package usstate provides normalization of US state and ZIP code inputs.
// This package centralizes location-token handling used by the eligibility
// engine, geocoding, and the HTTP layer.
package usstate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	letterAndSpace = regexp.MustCompile(`[^A-Za-z ]`)
	digitsOnly     = regexp.MustCompile(`[^0-9]`)
	zipPattern     = regexp.MustCompile(`^\d{5}$`)
)

// abbreviations holds the two-letter codes for US states plus DC.
var abbreviations = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {},
}

// names maps full state names (uppercased) to their abbreviations.
var names = map[string]string{
	"ALABAMA":              "AL",
	"ALASKA":               "AK",
	"ARIZONA":              "AZ",
	"ARKANSAS":             "AR",
	"CALIFORNIA":           "CA",
	"COLORADO":             "CO",
	"CONNECTICUT":          "CT",
	"DELAWARE":             "DE",
	"FLORIDA":              "FL",
	"GEORGIA":              "GA",
	"HAWAII":               "HI",
	"IDAHO":                "ID",
	"ILLINOIS":             "IL",
	"INDIANA":              "IN",
	"IOWA":                 "IA",
	"KANSAS":               "KS",
	"KENTUCKY":             "KY",
	"LOUISIANA":            "LA",
	"MAINE":                "ME",
	"MARYLAND":             "MD",
	"MASSACHUSETTS":        "MA",
	"MICHIGAN":             "MI",
	"MINNESOTA":            "MN",
	"MISSISSIPPI":          "MS",
	"MISSOURI":             "MO",
	"MONTANA":              "MT",
	"NEBRASKA":             "NE",
	"NEVADA":               "NV",
	"NEW HAMPSHIRE":        "NH",
	"NEW JERSEY":           "NJ",
	"NEW MEXICO":           "NM",
	"NEW YORK":             "NY",
	"NORTH CAROLINA":       "NC",
	"NORTH DAKOTA":         "ND",
	"OHIO":                 "OH",
	"OKLAHOMA":             "OK",
	"OREGON":               "OR",
	"PENNSYLVANIA":         "PA",
	"RHODE ISLAND":         "RI",
	"SOUTH CAROLINA":       "SC",
	"SOUTH DAKOTA":         "SD",
	"TENNESSEE":            "TN",
	"TEXAS":                "TX",
	"UTAH":                 "UT",
	"VERMONT":              "VT",
	"VIRGINIA":             "VA",
	"WASHINGTON":           "WA",
	"WEST VIRGINIA":        "WV",
	"WISCONSIN":            "WI",
	"WYOMING":              "WY",
	"DISTRICT OF COLUMBIA": "DC",
}

// NormalizeState resolves a state token to its two-letter abbreviation.
// It accepts abbreviations or full state names, case-insensitively, and
// strips punctuation before matching.
func NormalizeState(value string) (string, error) {
	token := letterAndSpace.ReplaceAllString(value, "")
	token = strings.ToUpper(strings.TrimSpace(token))

	if _, ok := abbreviations[token]; ok {
		return token, nil
	}
	if abbr, ok := names[token]; ok {
		return abbr, nil
	}
	return "", fmt.Errorf("unrecognized state %q: must be a US state name or 2-letter abbreviation", value)
}

// NormalizeZip resolves a ZIP token to a 5-digit US ZIP code.
// ZIP+4 values are collapsed to their 5-digit prefix.
func NormalizeZip(value string) (string, error) {
	digits := digitsOnly.ReplaceAllString(value, "")
	if len(digits) == 9 {
		digits = digits[:5]
	}
	if !zipPattern.MatchString(digits) {
		return "", fmt.Errorf("invalid ZIP code %q: must be a 5-digit US ZIP code", value)
	}
	return digits, nil
}
