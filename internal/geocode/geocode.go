// Package geocode resolves US ZIP codes to city, state, and coordinates
// using the Zippopotam.us API, with optional Redis-backed caching.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/benefind/internal/usstate"
)

// DefaultEndpoint is the Zippopotam.us US lookup endpoint pattern.
const DefaultEndpoint = "https://api.zippopotam.us/us/%s"

// DefaultTimeout is the default lookup timeout.
const DefaultTimeout = 8 * time.Second

// Location is a resolved ZIP code. Latitude and Longitude are nil when the
// lookup degraded to the caller-supplied state.
type Location struct {
	ZipCode   string   `json:"zip_code"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// NotFoundError indicates the ZIP code does not exist.
type NotFoundError struct {
	ZipCode string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ZIP code %s was not found", e.ZipCode)
}

// MismatchError indicates the ZIP code resolves to a different state than
// the caller supplied.
type MismatchError struct {
	ZipCode       string
	ResolvedState string
	GivenState    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("ZIP code %s maps to %s, not %s", e.ZipCode, e.ResolvedState, e.GivenState)
}

// UnavailableError indicates the lookup service could not be reached and no
// caller-supplied state was available to degrade to.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return "location lookup is temporarily unavailable; include both ZIP code and state"
}

func (e *UnavailableError) Unwrap() error { return e.Cause }

// Client resolves ZIP codes against Zippopotam.us.
type Client struct {
	httpClient *http.Client
	endpoint   string
	cache      *Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint overrides the endpoint pattern (used by tests).
func WithEndpoint(pattern string) Option {
	return func(c *Client) { c.endpoint = pattern }
}

// WithCache attaches a response cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates a geocoding client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		endpoint:   DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// zippopotamResponse mirrors the subset of the API payload we consume.
type zippopotamResponse struct {
	State  string `json:"state abbreviation"`
	Places []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state abbreviation"`
		StateName string `json:"state"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// Resolve looks up a ZIP code. When givenState is non-empty it is checked
// against the resolved state, and the lookup degrades to it (without
// coordinates) if the service is unreachable. An empty givenState makes
// service failures fatal.
func (c *Client) Resolve(ctx context.Context, zipCode, givenState string) (*Location, error) {
	zip, err := usstate.NormalizeZip(zipCode)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if loc, ok := c.cache.Get(ctx, zip); ok {
			if err := checkStateAgreement(loc, givenState); err != nil {
				return nil, err
			}
			return loc, nil
		}
	}

	loc, err := c.lookup(ctx, zip)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
		// Transport failure: degrade to the caller-supplied state if we
		// have one, otherwise surface the outage.
		if givenState == "" {
			return nil, &UnavailableError{Cause: err}
		}
		state, stateErr := usstate.NormalizeState(givenState)
		if stateErr != nil {
			return nil, stateErr
		}
		return &Location{ZipCode: zip, State: state}, nil
	}

	if err := checkStateAgreement(loc, givenState); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, loc)
	}
	return loc, nil
}

func (c *Client) lookup(ctx context.Context, zip string) (*Location, error) {
	url := fmt.Sprintf(c.endpoint, zip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{ZipCode: zip}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned HTTP %d", resp.StatusCode)
	}

	var payload zippopotamResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	loc := &Location{ZipCode: zip}
	rawState := payload.State
	if len(payload.Places) > 0 {
		place := payload.Places[0]
		loc.City = place.PlaceName
		if rawState == "" {
			rawState = place.State
		}
		if rawState == "" {
			rawState = place.StateName
		}
		if lat, err := strconv.ParseFloat(place.Latitude, 64); err == nil {
			loc.Latitude = &lat
		}
		if lon, err := strconv.ParseFloat(place.Longitude, 64); err == nil {
			loc.Longitude = &lon
		}
	}

	state, err := usstate.NormalizeState(rawState)
	if err != nil {
		return nil, fmt.Errorf("could not determine state for ZIP %s: %w", zip, err)
	}
	loc.State = state

	return loc, nil
}

// checkStateAgreement verifies the resolved state matches the caller's
// state when one was supplied.
func checkStateAgreement(loc *Location, givenState string) error {
	if givenState == "" {
		return nil
	}
	state, err := usstate.NormalizeState(givenState)
	if err != nil {
		return err
	}
	if loc.State != state {
		return &MismatchError{ZipCode: loc.ZipCode, ResolvedState: loc.State, GivenState: state}
	}
	return nil
}
