// Package fetch - source.go provides policy-source detection and
// source-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Source represents a known publisher of benefit-program policy pages.
type Source string

const (
	// SourceUSDA is the USDA Food and Nutrition Service site
	SourceUSDA Source = "usda_fns"
	// SourceBenefitsGov is the federal Benefits.gov portal
	SourceBenefitsGov Source = "benefits_gov"
	// SourceStateAgency is a state government site
	SourceStateAgency Source = "state_agency"
	// SourceUnknown is an unrecognized publisher
	SourceUnknown Source = "unknown"
)

// DetectSource identifies the policy-page publisher from a URL.
func DetectSource(urlStr string) Source {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SourceUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "fns.usda.gov") || strings.Contains(host, "usda.gov") {
		return SourceUSDA
	}

	if strings.Contains(host, "benefits.gov") {
		return SourceBenefitsGov
	}

	// State sites are .gov domains with a state subdomain or a two-letter
	// state segment (e.g. dhs.state.mn.us, cdss.ca.gov).
	if strings.HasSuffix(host, ".gov") || strings.Contains(host, ".state.") {
		return SourceStateAgency
	}

	return SourceUnknown
}

// SourceContentSelectors returns content selectors optimized for a specific publisher.
func SourceContentSelectors(source Source) []string {
	switch source {
	case SourceUSDA:
		return []string{
			".usa-prose",
			".field--name-body",
			"#block-fns-content",
			"main",
			"article",
		}
	case SourceBenefitsGov:
		return []string{
			".benefit-detail",
			".program-description",
			"main",
			".content",
		}
	case SourceStateAgency:
		return PolicyPageSelectors()
	default:
		return DefaultTextSelectors()
	}
}

// SourceNoiseSelectors returns noise exclusion selectors for a specific publisher.
func SourceNoiseSelectors(source Source) []string {
	// Common noise selectors for all publishers
	common := []string{
		// Language and accessibility toolbars
		".language-selector",
		".translate-widget",
		"#google_translate_element",
		".skip-link",

		// Alert banners
		".usa-banner",
		".alert-banner",
		".emergency-alert",
		".site-alert",

		// Feedback and survey widgets
		".feedback-widget",
		".survey-prompt",
		"[data-testid='feedback']",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Generic navigation already handled in fetch.go
	}

	// Publisher-specific noise selectors
	switch source {
	case SourceUSDA:
		return append(common,
			".usa-footer",
			".usa-nav",
			".breadcrumb",
			"#block-fns-breadcrumbs",
		)
	case SourceBenefitsGov:
		return append(common,
			".related-programs",
			".benefit-sidebar",
			".quick-links",
		)
	case SourceStateAgency:
		return append(common,
			".agency-footer",
			".breadcrumb",
			".left-nav",
			".secondary-nav",
		)
	default:
		return common
	}
}
