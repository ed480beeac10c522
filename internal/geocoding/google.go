package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes addresses with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	region string
	log    *slog.Logger
}

// GoogleAPIClient is the part of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider wraps client. A non-empty region biases results towards that country.
func NewGoogleProvider(client GoogleAPIClient, region string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, region: region, log: log}
}

// Geocode returns the location of the best match for address.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	results, err := gp.client.Geocode(ctx, &maps.GeocodingRequest{Address: address, Region: gp.region})
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	location := results[0].Geometry.Location
	if results[0].PartialMatch {
		gp.log.InfoContext(ctx, "Google Maps returned a partial match", "address", address,
			"formatted", results[0].FormattedAddress)
	}

	return checkCoordinates(models.Coordinates{Longitude: location.Lng, Latitude: location.Lat})
}
