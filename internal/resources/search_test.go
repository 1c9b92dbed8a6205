package resources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/benefind/internal/geocode"
)

type stubPantries struct {
	pantries []Pantry
	err      error
}

func (s stubPantries) FindPantries(_ context.Context, _, _, _ float64) ([]Pantry, error) {
	return s.pantries, s.err
}

type stubEvents struct {
	drives []FoodDrive
	err    error
}

func (s stubEvents) FindFoodDrives(_ context.Context, _, _, _ float64) ([]FoodDrive, error) {
	return s.drives, s.err
}

func coord(v float64) *float64 { return &v }

func locationWithCoords() *geocode.Location {
	return &geocode.Location{
		ZipCode:   "20059",
		City:      "Washington",
		State:     "DC",
		Latitude:  coord(38.9216),
		Longitude: coord(-77.0198),
	}
}

func fixedNow() time.Time {
	// A Wednesday.
	return time.Date(2025, time.July, 9, 12, 0, 0, 0, time.UTC)
}

func TestFinderSearch_LiveResults(t *testing.T) {
	live := []Pantry{{Name: "Open Door Pantry", Kind: "pantry"}}
	events := []FoodDrive{{Name: "Summer Food Drive", Kind: "live_event"}}

	finder := NewFinder(stubPantries{pantries: live}, stubEvents{drives: events}, fixedNow)
	results, err := finder.Search(context.Background(), locationWithCoords(), 10)
	require.NoError(t, err)

	assert.Equal(t, live, results.Pantries)
	assert.Equal(t, events, results.FoodDrives)
}

func TestFinderSearch_LookupErrorsFallBack(t *testing.T) {
	finder := NewFinder(
		stubPantries{err: errors.New("overpass down")},
		stubEvents{err: errors.New("eventbrite down")},
		fixedNow,
	)
	results, err := finder.Search(context.Background(), locationWithCoords(), 10)
	require.NoError(t, err)

	require.Len(t, results.Pantries, 2)
	assert.Equal(t, "referral", results.Pantries[0].Kind)
	require.Len(t, results.FoodDrives, 2)
	assert.Equal(t, "estimated_event", results.FoodDrives[0].Kind)
	assert.NotEmpty(t, results.Note)
}

func TestFinderSearch_NoCoordinatesUsesFallbacks(t *testing.T) {
	loc := &geocode.Location{ZipCode: "20059", City: "Washington", State: "DC"}
	finder := NewFinder(stubPantries{pantries: []Pantry{{Name: "never reached"}}}, stubEvents{}, fixedNow)

	results, err := finder.Search(context.Background(), loc, 0)
	require.NoError(t, err)
	assert.Equal(t, "referral", results.Pantries[0].Kind)
}

func TestFinderSearch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finder := NewFinder(stubPantries{}, stubEvents{}, fixedNow)
	_, err := finder.Search(ctx, locationWithCoords(), 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFallbackFoodDrives_NextTwoSaturdays(t *testing.T) {
	drives := FallbackFoodDrives("Washington", "DC", fixedNow())
	require.Len(t, drives, 2)
	assert.Equal(t, "2025-07-12", drives[0].Date)
	assert.Equal(t, "2025-07-19", drives[1].Date)
	assert.Equal(t, "Washington, DC", drives[0].Location)
}

func TestFallbackFoodDrives_OnASaturday(t *testing.T) {
	saturday := time.Date(2025, time.July, 12, 9, 0, 0, 0, time.UTC)
	drives := FallbackFoodDrives("", "TX", saturday)
	assert.Equal(t, "2025-07-12", drives[0].Date)
	assert.Equal(t, "TX, TX", drives[0].Location)
}

func TestFallbackPantries(t *testing.T) {
	pantries := FallbackPantries("20059", "DC", "Washington")
	require.Len(t, pantries, 2)
	assert.Equal(t, "Washington 2-1-1 Food Assistance Referral", pantries[0].Name)
	assert.Equal(t, "211", pantries[0].Phone)
	assert.Contains(t, pantries[1].Address, "20059")
}

func TestEventbrite_NoTokenReturnsNothing(t *testing.T) {
	client := NewEventbriteClient("", nil)
	drives, err := client.FindFoodDrives(context.Background(), 38.9, -77.0, 10)
	require.NoError(t, err)
	assert.Nil(t, drives)
}

func TestEventbrite_ParsesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "food drive", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{
			"events": [
				{
					"name": {"text": "Canned Goods Drive"},
					"start": {"local": "2025-07-20T10:00:00"},
					"url": "https://example.com/e/1"
				},
				{}
			]
		}`))
	}))
	defer srv.Close()

	client := NewEventbriteClient("test-token", srv.Client()).WithEndpoint(srv.URL)
	drives, err := client.FindFoodDrives(context.Background(), 38.9, -77.0, 10)
	require.NoError(t, err)
	require.Len(t, drives, 2)

	assert.Equal(t, "Canned Goods Drive", drives[0].Name)
	assert.Equal(t, "2025-07-20T10:00:00", drives[0].Date)
	assert.Equal(t, "live_event", drives[0].Kind)
	assert.Equal(t, "Local Food Drive", drives[1].Name)
}

func TestEventbrite_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewEventbriteClient("test-token", srv.Client()).WithEndpoint(srv.URL)
	_, err := client.FindFoodDrives(context.Background(), 38.9, -77.0, 10)
	assert.Error(t, err)
}
