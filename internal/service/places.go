package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/repository"
)

const (
	placeListLimit     = 1000
	nearbyPlacesLimit  = 200
	defaultPlaceRadius = 3000
)

// CreatePlaceInput is the body of a place submission.
type CreatePlaceInput struct {
	Name        string   `json:"name"        validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Address     string   `json:"address"     validate:"max=500"`
	Lat         *float64 `json:"lat"         validate:"omitempty,latitude"`
	Lng         *float64 `json:"lng"         validate:"omitempty,longitude"`
	Tags        []string `json:"tags"        validate:"max=20,dive,required,max=64"`
	Photos      []string `json:"photos"      validate:"max=10,dive,url"`
}

var createPlaceMessages = messages{
	"name.required": "name, lat, lng required",
	"lat":           "lat must be between -90 and 90",
	"lng":           "lng must be between -180 and 180",
	"tags":          "tags must be a list of short strings",
	"photos":        "photos must be a list of URLs",
}

// PlaceService manages community-submitted accessible places.
type PlaceService struct {
	log       *slog.Logger
	store     repository.PlaceStore
	geocoding bool
}

// NewPlaceService creates a new PlaceService. When geocoding is enabled, places may be
// submitted with an address only and receive their point later from the PlaceGeocoder.
func NewPlaceService(log *slog.Logger, store repository.PlaceStore, geocoding bool) *PlaceService {
	return &PlaceService{log: log, store: store, geocoding: geocoding}
}

// Create stores a new place. Authenticated submitters are recorded in AddedBy.
func (s *PlaceService) Create(ctx context.Context, in CreatePlaceInput) (*models.Place, error) {
	if err := check(in, createPlaceMessages); err != nil {
		return nil, err
	}

	place := &models.Place{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Tags:        in.Tags,
		Photos:      in.Photos,
	}

	switch {
	case in.Lat != nil && in.Lng != nil:
		point := models.NewPoint(*in.Lng, *in.Lat)
		place.Location = &point
	case in.Address != "" && s.geocoding:
		s.log.DebugContext(ctx, "Place queued for geocoding", "address", in.Address)
	default:
		return nil, invalid("name, lat, lng required")
	}

	if claims, ok := auth.ClaimsFromContext(ctx); ok && validID(claims.ID) {
		place.AddedBy = &claims.ID
	}

	if err := s.store.CreatePlace(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	return place, nil
}

// Nearby returns places within the radius (default 3 km), closest first, optionally
// restricted to places carrying at least one of the requested tags.
func (s *PlaceService) Nearby(ctx context.Context, q NearbyQuery) ([]models.Place, error) {
	point, radius, err := q.point("lng and lat required", defaultPlaceRadius)
	if err != nil {
		return nil, err
	}

	places, err := s.store.FindPlacesNear(ctx, point, radius, q.Tags, nearbyPlacesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby places: %w", err)
	}

	return places, nil
}

// List returns places, newest first.
func (s *PlaceService) List(ctx context.Context) ([]models.Place, error) {
	places, err := s.store.ListPlaces(ctx, placeListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	return places, nil
}

// Get returns a single place.
func (s *PlaceService) Get(ctx context.Context, id string) (*models.Place, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	place, err := s.store.GetPlace(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to get place")
	}

	return place, nil
}

// Delete removes a place.
func (s *PlaceService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.store.DeletePlace(ctx, id); err != nil {
		return storeError(err, "failed to delete place")
	}
	s.log.InfoContext(ctx, "Place deleted", "id", id)

	return nil
}
