package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/repository"
)

const (
	sosListLimit           = 200
	nearbyVolunteersLimit  = 100
	defaultVolunteerRadius = 5000
)

// Publisher fans an event out to every connected realtime client.
// Broadcast must not block on delivery.
type Publisher interface {
	Broadcast(event string, payload any)
}

// CreateAlertInput is the body of an SOS submission.
type CreateAlertInput struct {
	Lat      *float64       `json:"lat"      validate:"required,latitude"`
	Lng      *float64       `json:"lng"      validate:"required,longitude"`
	Message  string         `json:"message"  validate:"max=2000"`
	UserID   *string        `json:"userId"   validate:"omitempty,max=128"`
	Metadata map[string]any `json:"metadata"`
}

var createAlertMessages = messages{
	"lat.required": "lat & lng required",
	"lng.required": "lat & lng required",
	"lat":          "lat must be between -90 and 90",
	"lng":          "lng must be between -180 and 180",
	"message":      "message is too long",
	"userId":       "userId is too long",
}

// UpdateStatusInput is the body of a status change.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// AckInput names the alert a volunteer acknowledges.
type AckInput struct {
	SOSID       string `json:"sosId"       validate:"required"`
	VolunteerID string `json:"volunteerId" validate:"required"`
}

// NearbyQuery locates entities around a point. A nil Radius selects the default radius.
type NearbyQuery struct {
	Lng    *float64
	Lat    *float64
	Radius *float64
	Tags   []string
}

func (q NearbyQuery) point(missingMsg string, defaultRadius float64) (models.Point, float64, error) {
	if q.Lng == nil || q.Lat == nil {
		return models.Point{}, 0, invalid(missingMsg)
	}
	point := models.NewPoint(*q.Lng, *q.Lat)
	if err := point.Validate(); err != nil {
		return models.Point{}, 0, invalid("invalid coordinates")
	}

	radius := defaultRadius
	if q.Radius != nil {
		radius = *q.Radius
	}
	if radius <= 0 {
		return models.Point{}, 0, invalid("radius must be positive")
	}

	return point, radius, nil
}

// SOSService enforces the SOS alert lifecycle and announces every change to realtime clients.
type SOSService struct {
	log        *slog.Logger
	alerts     repository.SOSStore
	volunteers repository.VolunteerStore
	publisher  Publisher
	metrics    *metrics.Metrics
}

// NewSOSService creates a new SOSService.
func NewSOSService(
	log *slog.Logger,
	alerts repository.SOSStore,
	volunteers repository.VolunteerStore,
	publisher Publisher,
	metrics *metrics.Metrics,
) *SOSService {
	return &SOSService{
		log:        log,
		alerts:     alerts,
		volunteers: volunteers,
		publisher:  publisher,
		metrics:    metrics,
	}
}

// CreateAlert stores a new open alert and broadcasts it as a sosAlert event.
// Nothing is stored when validation fails.
func (s *SOSService) CreateAlert(ctx context.Context, in CreateAlertInput) (*models.SOS, error) {
	if err := check(in, createAlertMessages); err != nil {
		return nil, err
	}

	sos := &models.SOS{
		UserID:   in.UserID,
		Message:  in.Message,
		Location: models.NewPoint(*in.Lng, *in.Lat),
		Status:   models.SOSStatusOpen,
		Metadata: in.Metadata,
	}
	if err := s.alerts.CreateSOS(ctx, sos); err != nil {
		return nil, fmt.Errorf("failed to create sos alert: %w", err)
	}

	s.metrics.SOSCreated.Inc()
	s.log.InfoContext(ctx, "SOS alert created", "id", sos.ID)
	s.publisher.Broadcast(models.EventSOSAlert, models.NewAlertEvent(sos))

	return sos, nil
}

// ListAlerts returns the newest alerts first. An empty status returns alerts in every status.
func (s *SOSService) ListAlerts(ctx context.Context, status models.SOSStatus) ([]models.SOS, error) {
	alerts, err := s.alerts.ListSOS(ctx, status, sosListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sos alerts: %w", err)
	}

	return alerts, nil
}

// ListPublic returns the currently open alerts, newest first.
func (s *SOSService) ListPublic(ctx context.Context) ([]models.SOS, error) {
	return s.ListAlerts(ctx, models.SOSStatusOpen)
}

// UpdateStatus moves an alert to a new status and broadcasts a sosUpdate event.
func (s *SOSService) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*models.SOS, error) {
	if err := check(in, messages{"status": "status required"}); err != nil {
		return nil, err
	}
	next, err := models.ParseSOSStatus(in.Status)
	if err != nil {
		return nil, invalid("status must be one of open, acknowledged, closed")
	}
	if !validID(id) {
		return nil, ErrNotFound
	}

	current, err := s.alerts.GetSOS(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to get sos alert")
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.alerts.UpdateSOSStatus(ctx, id, next, next.AllowedFrom())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.lostUpdate(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update sos status: %w", err)
	}

	s.metrics.SOSStatusChanges.WithLabelValues(string(updated.Status)).Inc()
	s.log.InfoContext(ctx, "SOS status updated", "id", id, "from", current.Status, "to", updated.Status)
	s.publisher.Broadcast(models.EventSOSUpdate, models.UpdateEvent{ID: updated.ID, Status: updated.Status})

	return updated, nil
}

// lostUpdate explains a guarded status write that matched no row: the alert was
// either deleted or moved to a status the requested one cannot follow.
func (s *SOSService) lostUpdate(ctx context.Context, id string) error {
	current, err := s.alerts.GetSOS(ctx, id)
	if err != nil {
		return storeError(err, "failed to get sos alert")
	}
	s.log.InfoContext(ctx, "SOS status changed concurrently", "id", id, "status", current.Status)

	return ErrInvalidTransition
}

// Acknowledge records that a registered volunteer has taken an open alert.
// The caller must be authenticated; the acknowledgement is stored before
// sosAcknowledged and sosUpdate are broadcast.
func (s *SOSService) Acknowledge(ctx context.Context, in AckInput) (*models.SOS, error) {
	if _, ok := auth.ClaimsFromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}
	if err := check(in, messages{"sosId": "sosId & volunteerId required", "volunteerId": "sosId & volunteerId required"}); err != nil {
		return nil, err
	}
	if !validID(in.SOSID) {
		return nil, ErrNotFound
	}
	if !validID(in.VolunteerID) {
		return nil, invalid("unknown volunteer")
	}

	current, err := s.alerts.GetSOS(ctx, in.SOSID)
	if err != nil {
		return nil, storeError(err, "failed to get sos alert")
	}
	if current.Status != models.SOSStatusOpen {
		return nil, ErrInvalidTransition
	}

	if _, err = s.volunteers.GetVolunteer(ctx, in.VolunteerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("unknown volunteer")
		}
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}

	acked, err := s.alerts.AcknowledgeSOS(ctx, in.SOSID, in.VolunteerID)
	if errors.Is(err, repository.ErrNotFound) {
		// Another volunteer or an operator changed the alert in between.
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge sos alert: %w", err)
	}

	s.metrics.SOSStatusChanges.WithLabelValues(string(acked.Status)).Inc()
	s.log.InfoContext(ctx, "SOS acknowledged", "id", acked.ID, "volunteer", in.VolunteerID)
	s.publisher.Broadcast(models.EventSOSAcknowledged, models.AckEvent{SOSID: acked.ID, VolunteerID: in.VolunteerID})
	s.publisher.Broadcast(models.EventSOSUpdate, models.UpdateEvent{ID: acked.ID, Status: acked.Status})

	return acked, nil
}

// FindNearbyVolunteers returns volunteers within the radius (default 5 km), closest first.
func (s *SOSService) FindNearbyVolunteers(ctx context.Context, q NearbyQuery) ([]models.Volunteer, error) {
	point, radius, err := q.point("lng & lat required", defaultVolunteerRadius)
	if err != nil {
		return nil, err
	}

	volunteers, err := s.volunteers.FindVolunteersNear(ctx, point, radius, nearbyVolunteersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby volunteers: %w", err)
	}

	return volunteers, nil
}

// storeError converts repository.ErrNotFound into ErrNotFound and wraps anything else.
func storeError(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}

	return fmt.Errorf("%s: %w", msg, err)
}
