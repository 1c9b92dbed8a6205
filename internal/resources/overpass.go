// Package resources finds nearby food-support resources: pantries via
// OpenStreetMap's Overpass API and food-drive events via Eventbrite, with
// static referral fallbacks when live lookups fail.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// DefaultOverpassEndpoints lists the Overpass mirrors tried in order.
var DefaultOverpassEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
}

const (
	overpassTimeout = 18 * time.Second
	metersPerMile   = 1609.34
	maxPantries     = 10
)

// Pantry is one food-support location.
type Pantry struct {
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	DistanceMiles *float64 `json:"distance_miles"`
	Address       string   `json:"address,omitempty"`
	Website       string   `json:"website,omitempty"`
	Phone         string   `json:"phone,omitempty"`
}

// OverpassClient queries the Overpass API for pantries.
type OverpassClient struct {
	httpClient *http.Client
	endpoints  []string
}

// NewOverpassClient creates an Overpass client. Empty endpoints use the
// default mirrors.
func NewOverpassClient(httpClient *http.Client, endpoints ...string) *OverpassClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: overpassTimeout}
	}
	if len(endpoints) == 0 {
		endpoints = DefaultOverpassEndpoints
	}
	return &OverpassClient{httpClient: httpClient, endpoints: endpoints}
}

type overpassElement struct {
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// FindPantries searches for food pantries, food banks, soup kitchens, and
// community fridges around a coordinate. Results are deduplicated by
// name+address, sorted by distance, and capped at 10.
func (c *OverpassClient) FindPantries(ctx context.Context, lat, lon, radiusMiles float64) ([]Pantry, error) {
	query := buildPantryQuery(lat, lon, radiusMiles)

	var lastErr error
	for _, endpoint := range c.endpoints {
		payload, err := c.query(ctx, endpoint, query)
		if err != nil {
			lastErr = err
			continue
		}
		return parsePantries(payload.Elements, lat, lon), nil
	}
	return nil, fmt.Errorf("all overpass endpoints failed: %w", lastErr)
}

func buildPantryQuery(lat, lon, radiusMiles float64) string {
	radiusMeters := int(radiusMiles * metersPerMile)
	return strings.TrimSpace(fmt.Sprintf(`
[out:json][timeout:25];
(
  node(around:%[1]d,%[2]f,%[3]f)["amenity"="social_facility"]["social_facility"~"food_bank|food_pantry|soup_kitchen",i];
  way(around:%[1]d,%[2]f,%[3]f)["amenity"="social_facility"]["social_facility"~"food_bank|food_pantry|soup_kitchen",i];
  node(around:%[1]d,%[2]f,%[3]f)["name"~"food pantry|food bank|community fridge|soup kitchen",i];
  way(around:%[1]d,%[2]f,%[3]f)["name"~"food pantry|food bank|community fridge|soup kitchen",i];
);
out center 80;
`, radiusMeters, lat, lon))
}

func (c *OverpassClient) query(ctx context.Context, endpoint, query string) (*overpassResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("failed to create overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned HTTP %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}
	return &payload, nil
}

// parsePantries converts Overpass elements into sorted, deduplicated
// pantries.
func parsePantries(elements []overpassElement, sourceLat, sourceLon float64) []Pantry {
	seen := make(map[string]struct{})
	pantries := make([]Pantry, 0, len(elements))

	for _, el := range elements {
		lat, lon := el.coordinates()

		name := el.Tags["name"]
		if name == "" {
			name = "Food Support Location"
		}
		address := formatAddress(el.Tags)

		key := name + "|" + address
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		p := Pantry{
			Name:    name,
			Kind:    "pantry",
			Address: address,
			Website: el.Tags["website"],
			Phone:   firstNonEmpty(el.Tags["phone"], el.Tags["contact:phone"]),
		}
		if lat != nil && lon != nil {
			d := distanceMiles(sourceLat, sourceLon, *lat, *lon)
			p.DistanceMiles = &d
		}
		pantries = append(pantries, p)
	}

	sort.SliceStable(pantries, func(i, j int) bool {
		di, dj := pantries[i].DistanceMiles, pantries[j].DistanceMiles
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})

	if len(pantries) > maxPantries {
		pantries = pantries[:maxPantries]
	}
	return pantries
}

func (el overpassElement) coordinates() (*float64, *float64) {
	if el.Lat != nil && el.Lon != nil {
		return el.Lat, el.Lon
	}
	if el.Center != nil {
		return &el.Center.Lat, &el.Center.Lon
	}
	return nil, nil
}

// formatAddress assembles a display address from OSM addr:* tags.
func formatAddress(tags map[string]string) string {
	street := strings.TrimSpace(strings.Join(nonEmpty(tags["addr:housenumber"], tags["addr:street"]), " "))
	cityState := strings.Join(nonEmpty(tags["addr:city"], tags["addr:state"]), ", ")

	parts := nonEmpty(street, cityState, tags["addr:postcode"])
	return strings.Join(parts, ", ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
