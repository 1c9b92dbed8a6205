package chat

import "strings"

// Intent classifies what a message is asking for.
type Intent string

const (
	// IntentEligibility asks whether the household qualifies for benefits
	IntentEligibility Intent = "eligibility"
	// IntentResources asks for nearby pantries or food drives
	IntentResources Intent = "resources"
	// IntentGeneral is any other food-assistance question
	IntentGeneral Intent = "general"
)

var eligibilityKeywords = []string{
	"snap", "eligib", "qualify", "qualifies", "ebt", "food stamp", "benefit amount",
}

var resourceKeywords = []string{
	"pantry", "pantries", "food drive", "food bank", "soup kitchen",
	"nearby", "near me", "community fridge",
}

// DetectIntent classifies a message by keyword. Eligibility wins ties:
// "do I qualify for a food bank" is really an eligibility question.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)

	for _, kw := range eligibilityKeywords {
		if strings.Contains(lower, kw) {
			return IntentEligibility
		}
	}
	for _, kw := range resourceKeywords {
		if strings.Contains(lower, kw) {
			return IntentResources
		}
	}
	return IntentGeneral
}
