package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultEventbriteEndpoint is the Eventbrite event search endpoint.
const DefaultEventbriteEndpoint = "https://www.eventbriteapi.com/v3/events/search/"

const (
	eventbriteTimeout = 12 * time.Second
	maxFoodDrives     = 6
)

// FoodDrive is one food-drive event or referral.
type FoodDrive struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	Details  string `json:"details,omitempty"`
}

// EventbriteClient searches Eventbrite for food-drive events. A client
// without a token returns no events; callers fall back to estimated
// weekend drives.
type EventbriteClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewEventbriteClient creates an Eventbrite client.
func NewEventbriteClient(token string, httpClient *http.Client) *EventbriteClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: eventbriteTimeout}
	}
	return &EventbriteClient{
		httpClient: httpClient,
		endpoint:   DefaultEventbriteEndpoint,
		token:      token,
	}
}

// WithEndpoint overrides the search endpoint (used by tests).
func (c *EventbriteClient) WithEndpoint(endpoint string) *EventbriteClient {
	c.endpoint = endpoint
	return c
}

type eventbriteResponse struct {
	Events []struct {
		Name *struct {
			Text string `json:"text"`
		} `json:"name"`
		Start *struct {
			Local string `json:"local"`
		} `json:"start"`
		URL string `json:"url"`
	} `json:"events"`
}

// FindFoodDrives searches for upcoming food-drive events near a
// coordinate. Without a configured token it returns no events and no
// error.
func (c *EventbriteClient) FindFoodDrives(ctx context.Context, lat, lon, radiusMiles float64) ([]FoodDrive, error) {
	if c.token == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", "food drive")
	params.Set("sort_by", "date")
	params.Set("location.latitude", fmt.Sprintf("%f", lat))
	params.Set("location.longitude", fmt.Sprintf("%f", lon))
	params.Set("location.within", fmt.Sprintf("%.0fmi", radiusMiles))
	params.Set("start_date.keyword", "this_month")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create eventbrite request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eventbrite request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eventbrite returned HTTP %d", resp.StatusCode)
	}

	var payload eventbriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode eventbrite response: %w", err)
	}

	drives := make([]FoodDrive, 0, maxFoodDrives)
	for _, event := range payload.Events {
		if len(drives) == maxFoodDrives {
			break
		}

		name := "Local Food Drive"
		if event.Name != nil && event.Name.Text != "" {
			name = event.Name.Text
		}
		date := ""
		if event.Start != nil {
			date = event.Start.Local
		}

		drives = append(drives, FoodDrive{
			Name:     name,
			Date:     date,
			Kind:     "live_event",
			Location: "See event details",
			Details:  event.URL,
		})
	}
	return drives, nil
}
