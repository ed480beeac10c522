package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeNone disables geocoding of place addresses.
	ProviderTypeNone ProviderType = "none"
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ErrDisabled is returned by NewProvider for ProviderTypeNone.
var ErrDisabled = errors.New("geocoding is disabled")

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType
	APIKey    string // required by Google
	RateLimit int    // requests per second, Google only
	Region    string // ccTLD region bias, e.g. "in"
	Language  string // preferred result language
	UserAgent string // identifies the deployment to Nominatim
	Logger    *slog.Logger
}

// NewProvider creates the geocoding provider selected by config.Type.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return newNominatimProvider(config), nil
	case ProviderTypeNone, "":
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Region, config.Logger), nil
}

func newNominatimProvider(config ProviderConfig) Provider {
	var opts []NominatimOption
	if config.UserAgent != "" {
		opts = append(opts, WithUserAgent(config.UserAgent))
	}
	if config.Language != "" {
		opts = append(opts, WithLanguage(config.Language))
	}
	if config.Region != "" {
		opts = append(opts, WithCountryCodes(config.Region))
	}

	return NewNominatimProvider(config.Logger, opts...)
}
