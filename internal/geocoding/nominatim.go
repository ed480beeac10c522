package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"golang.org/x/time/rate"
)

const (
	nominatimURL       = "https://nominatim.openstreetmap.org/search"
	nominatimUserAgent = "Smart-Inclusion-API/1.0 (https://github.com/UnknownOlympus/inclusion)"
	nominatimTimeout   = 10 * time.Second
	// minFallbackParts keeps fallbacks at street or locality level rather than a bare city or country.
	minFallbackParts = 2
)

// HTTPClient is the part of *http.Client used by NominatimProvider.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NominatimProvider geocodes addresses with the OpenStreetMap Nominatim search API.
// Requests are throttled to one per second as required by the public instance's usage policy.
type NominatimProvider struct {
	client       HTTPClient
	baseURL      string
	userAgent    string
	language     string
	countryCodes string
	limiter      *rate.Limiter
	log          *slog.Logger
}

// NominatimOption customises a NominatimProvider.
type NominatimOption func(*NominatimProvider)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client HTTPClient) NominatimOption {
	return func(np *NominatimProvider) { np.client = client }
}

// WithBaseURL points the provider at a self-hosted Nominatim instance.
func WithBaseURL(baseURL string) NominatimOption {
	return func(np *NominatimProvider) { np.baseURL = baseURL }
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(userAgent string) NominatimOption {
	return func(np *NominatimProvider) { np.userAgent = userAgent }
}

// WithLanguage sets the preferred language of results.
func WithLanguage(language string) NominatimOption {
	return func(np *NominatimProvider) { np.language = language }
}

// WithCountryCodes restricts results to a comma-separated list of ISO 3166-1 alpha-2 codes.
func WithCountryCodes(codes string) NominatimOption {
	return func(np *NominatimProvider) { np.countryCodes = strings.ToLower(codes) }
}

// WithRateLimit overrides the request throttle.
func WithRateLimit(limit rate.Limit, burst int) NominatimOption {
	return func(np *NominatimProvider) { np.limiter = rate.NewLimiter(limit, burst) }
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimProvider creates a provider for the public Nominatim instance.
func NewNominatimProvider(log *slog.Logger, opts ...NominatimOption) *NominatimProvider {
	np := &NominatimProvider{
		client:    &http.Client{Timeout: nominatimTimeout},
		baseURL:   nominatimURL,
		userAgent: nominatimUserAgent,
		language:  "en",
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		log:       log,
	}
	for _, opt := range opts {
		opt(np)
	}

	return np
}

// Geocode resolves address, retrying with less specific forms of it while Nominatim finds nothing.
// Community-submitted addresses are written most specific part first
// ("12 Janpath, Connaught Place, New Delhi"), so each fallback drops the leading component.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	candidates := addressFallbacks(address)

	for level, candidate := range candidates {
		coords, err := np.search(ctx, candidate)
		switch {
		case err == nil:
			if level > 0 {
				np.log.InfoContext(ctx, "Geocoded using fallback address",
					"original", address, "fallback", candidate, "fallback_level", level)
			}
			return coords, nil
		case errors.Is(err, ErrNoResults):
			np.log.DebugContext(ctx, "No results for address, trying fallback", "address", candidate)
		default:
			return nil, err
		}
	}

	np.log.WarnContext(ctx, "All address fallbacks exhausted", "address", address, "tried", len(candidates))

	return nil, ErrNoResults
}

// addressFallbacks returns address followed by forms with leading components removed.
func addressFallbacks(address string) []string {
	var parts []string
	for _, part := range strings.Split(address, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return []string{strings.TrimSpace(address)}
	}

	candidates := []string{strings.Join(parts, ", ")}
	for i := 1; len(parts)-i >= minFallbackParts; i++ {
		candidates = append(candidates, strings.Join(parts[i:], ", "))
	}

	return candidates
}

func (np *NominatimProvider) search(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	if np.countryCodes != "" {
		query.Set("countrycodes", np.countryCodes)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", np.language)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	np.log.DebugContext(ctx, "Nominatim found result", "address", address, "match", results[0].DisplayName)

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrInvalidCoordinates, results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrInvalidCoordinates, results[0].Lon)
	}

	return checkCoordinates(models.Coordinates{Longitude: lng, Latitude: lat})
}
