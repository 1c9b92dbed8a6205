package resources

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/benefind/internal/geocode"
)

// DefaultRadiusMiles is the search radius when the caller does not set one.
const DefaultRadiusMiles = 10.0

// PantrySearcher finds pantries around a coordinate.
type PantrySearcher interface {
	FindPantries(ctx context.Context, lat, lon, radiusMiles float64) ([]Pantry, error)
}

// EventSearcher finds food-drive events around a coordinate.
type EventSearcher interface {
	FindFoodDrives(ctx context.Context, lat, lon, radiusMiles float64) ([]FoodDrive, error)
}

// Results holds the combined outcome of a resource search. Note is set
// when referral fallbacks stand in for live results.
type Results struct {
	Pantries   []Pantry    `json:"pantries"`
	FoodDrives []FoodDrive `json:"food_drives"`
	Note       string      `json:"note,omitempty"`
}

// Finder composes pantry and event searches with referral fallbacks.
type Finder struct {
	pantries PantrySearcher
	events   EventSearcher
	now      func() time.Time
}

// NewFinder creates a Finder. A nil now func uses time.Now.
func NewFinder(pantries PantrySearcher, events EventSearcher, now func() time.Time) *Finder {
	if now == nil {
		now = time.Now
	}
	return &Finder{pantries: pantries, events: events, now: now}
}

// Search looks up pantries and food drives concurrently around a resolved
// location. Live lookup failures and empty results fall back to static
// referrals; Search itself only fails on context cancellation.
func (f *Finder) Search(ctx context.Context, loc *geocode.Location, radiusMiles float64) (*Results, error) {
	if radiusMiles <= 0 {
		radiusMiles = DefaultRadiusMiles
	}

	var pantries []Pantry
	var drives []FoodDrive

	if loc.Latitude != nil && loc.Longitude != nil {
		lat, lon := *loc.Latitude, *loc.Longitude

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			found, err := f.pantries.FindPantries(gCtx, lat, lon, radiusMiles)
			if err == nil {
				pantries = found
			}
			return nil // fall back on error
		})
		g.Go(func() error {
			found, err := f.events.FindFoodDrives(gCtx, lat, lon, radiusMiles)
			if err == nil {
				drives = found
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var note string
	if len(pantries) == 0 {
		pantries = FallbackPantries(loc.ZipCode, loc.State, loc.City)
		note = "Live pantry results were unavailable; showing referral services instead."
	}
	if len(drives) == 0 {
		drives = FallbackFoodDrives(loc.City, loc.State, f.now())
	}

	return &Results{Pantries: pantries, FoodDrives: drives, Note: note}, nil
}
