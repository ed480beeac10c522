package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/repository"
)

const volunteerListLimit = 500

// RegisterVolunteerInput is the body of a volunteer registration.
// An explicit Location wins over Lat/Lng.
type RegisterVolunteerInput struct {
	Name     string        `json:"name"     validate:"required,max=200"`
	Phone    string        `json:"phone"    validate:"max=32"`
	Email    string        `json:"email"    validate:"omitempty,email"`
	City     string        `json:"city"     validate:"max=100"`
	Skills   []string      `json:"skills"   validate:"max=50,dive,required,max=64"`
	Verified bool          `json:"verified"`
	Location *models.Point `json:"location"`
	Lat      *float64      `json:"lat"`
	Lng      *float64      `json:"lng"`
}

var registerVolunteerMessages = messages{
	"name.required": "Name is required",
	"name":          "name is too long",
	"email":         "invalid email",
	"skills":        "skills must be a list of short strings",
}

// VolunteerService registers and lists volunteers.
type VolunteerService struct {
	log   *slog.Logger
	store repository.VolunteerStore
}

// NewVolunteerService creates a new VolunteerService.
func NewVolunteerService(log *slog.Logger, store repository.VolunteerStore) *VolunteerService {
	return &VolunteerService{log: log, store: store}
}

// Register stores a new volunteer. The point is optional, but when present it must be valid.
func (s *VolunteerService) Register(ctx context.Context, in RegisterVolunteerInput) (*models.Volunteer, error) {
	if err := check(in, registerVolunteerMessages); err != nil {
		return nil, err
	}

	location := in.Location
	if location == nil && in.Lat != nil && in.Lng != nil {
		point := models.NewPoint(*in.Lng, *in.Lat)
		location = &point
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, invalid("invalid coordinates")
		}
	}

	volunteer := &models.Volunteer{
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		City:     in.City,
		Skills:   in.Skills,
		Verified: in.Verified,
		Location: location,
	}
	if err := s.store.CreateVolunteer(ctx, volunteer); err != nil {
		return nil, fmt.Errorf("failed to register volunteer: %w", err)
	}
	s.log.InfoContext(ctx, "Volunteer registered", "id", volunteer.ID, "located", location != nil)

	return volunteer, nil
}

// List returns registered volunteers, newest first.
func (s *VolunteerService) List(ctx context.Context) ([]models.Volunteer, error) {
	volunteers, err := s.store.ListVolunteers(ctx, volunteerListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}

	return volunteers, nil
}
