package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/repository"
)

// CreateSchemeInput is the body of a scheme publication.
type CreateSchemeInput struct {
	Title        string     `json:"title"        validate:"required,max=300"`
	Description  string     `json:"description"  validate:"max=10000"`
	Category     string     `json:"category"     validate:"max=100"`
	Organization string     `json:"organization" validate:"max=200"`
	URL          string     `json:"url"          validate:"omitempty,url"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Location     string     `json:"location"     validate:"max=200"`
}

var createSchemeMessages = messages{
	"title.required": "title required",
	"url":            "url must be a valid URL",
}

// SchemeService manages published government and NGO schemes.
type SchemeService struct {
	log   *slog.Logger
	store repository.SchemeStore
}

// NewSchemeService creates a new SchemeService.
func NewSchemeService(log *slog.Logger, store repository.SchemeStore) *SchemeService {
	return &SchemeService{log: log, store: store}
}

// Create publishes a scheme.
func (s *SchemeService) Create(ctx context.Context, in CreateSchemeInput) (*models.Scheme, error) {
	if err := check(in, createSchemeMessages); err != nil {
		return nil, err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, invalid("endDate must not be before startDate")
	}

	scheme := &models.Scheme{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Organization: in.Organization,
		URL:          in.URL,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Location:     in.Location,
	}
	if err := s.store.CreateScheme(ctx, scheme); err != nil {
		return nil, fmt.Errorf("failed to create scheme: %w", err)
	}
	s.log.InfoContext(ctx, "Scheme published", "id", scheme.ID)

	return scheme, nil
}

// List returns every scheme, latest start date first.
func (s *SchemeService) List(ctx context.Context) ([]models.Scheme, error) {
	schemes, err := s.store.ListSchemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemes: %w", err)
	}

	return schemes, nil
}

// Get returns a single scheme.
func (s *SchemeService) Get(ctx context.Context, id string) (*models.Scheme, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	scheme, err := s.store.GetScheme(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to get scheme")
	}

	return scheme, nil
}

// Delete removes a scheme.
func (s *SchemeService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.store.DeleteScheme(ctx, id); err != nil {
		return storeError(err, "failed to delete scheme")
	}

	return nil
}
