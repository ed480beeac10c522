package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/inclusion/internal/models"
)

// Errors shared by every provider.
var (
	ErrNoResults          = errors.New("geocoder returned no results")
	ErrInvalidCoordinates = errors.New("geocoder returned invalid coordinates")
)

// Provider resolves a free-form postal address to a geographic point.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// checkCoordinates rejects coordinates outside WGS 84 bounds.
func checkCoordinates(coords models.Coordinates) (*models.Coordinates, error) {
	if err := coords.Point().Validate(); err != nil {
		return nil, errors.Join(ErrInvalidCoordinates, err)
	}

	return &coords, nil
}
