package resources

import (
	"fmt"
	"time"
)

// FallbackPantries returns trusted referral options used when live pantry
// lookups fail or return nothing.
func FallbackPantries(zipCode, state, city string) []Pantry {
	cityOrState := city
	if cityOrState == "" {
		cityOrState = state
	}

	return []Pantry{
		{
			Name:    fmt.Sprintf("%s 2-1-1 Food Assistance Referral", cityOrState),
			Kind:    "referral",
			Address: fmt.Sprintf("Dial 211 in %s for nearby pantry referrals.", state),
			Website: "https://www.211.org",
			Phone:   "211",
		},
		{
			Name:    "Feeding America Food Bank Locator",
			Kind:    "food_bank_directory",
			Address: fmt.Sprintf("Search by ZIP %s.", zipCode),
			Website: "https://www.feedingamerica.org/find-your-local-foodbank",
		},
	}
}

// FallbackFoodDrives returns estimated weekend food-drive suggestions for
// the next two Saturdays after now. Community drives cluster on weekends,
// so the estimate points at the coming ones.
func FallbackFoodDrives(city, state string, now time.Time) []FoodDrive {
	base := city
	if base == "" {
		base = state
	}

	firstWeekend := now.AddDate(0, 0, daysUntilSaturday(now))
	secondWeekend := firstWeekend.AddDate(0, 0, 7)

	return []FoodDrive{
		{
			Name:     fmt.Sprintf("%s Community Food Drive", base),
			Date:     firstWeekend.Format("2006-01-02"),
			Kind:     "estimated_event",
			Location: fmt.Sprintf("%s, %s", base, state),
			Details:  "Local community drives are often posted through 211 and municipal websites.",
		},
		{
			Name:     fmt.Sprintf("%s Weekend Pantry Donation Day", base),
			Date:     secondWeekend.Format("2006-01-02"),
			Kind:     "estimated_event",
			Location: fmt.Sprintf("%s, %s", base, state),
			Details:  "Please confirm exact time/place with local organizers before attending.",
		},
	}
}

// daysUntilSaturday returns 0 when now is already a Saturday.
func daysUntilSaturday(now time.Time) int {
	return (int(time.Saturday) - int(now.Weekday()) + 7) % 7
}
