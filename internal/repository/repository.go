package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Database is the subset of pgxpool.Pool used by the repository.
// It is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db    Database
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// SOSStore persists SOS alerts.
type SOSStore interface {
	CreateSOS(ctx context.Context, sos *models.SOS) error
	GetSOS(ctx context.Context, id string) (*models.SOS, error)
	ListSOS(ctx context.Context, status models.SOSStatus, limit int) ([]models.SOS, error)
	UpdateSOSStatus(ctx context.Context, id string, status models.SOSStatus, from []models.SOSStatus) (*models.SOS, error)
	AcknowledgeSOS(ctx context.Context, id, volunteerID string) (*models.SOS, error)
}

// VolunteerStore persists volunteers and answers proximity queries over them.
type VolunteerStore interface {
	CreateVolunteer(ctx context.Context, volunteer *models.Volunteer) error
	GetVolunteer(ctx context.Context, id string) (*models.Volunteer, error)
	ListVolunteers(ctx context.Context, limit int) ([]models.Volunteer, error)
	FindVolunteersNear(ctx context.Context, point models.Point, radiusMeters float64, limit int) ([]models.Volunteer, error)
}

// PlaceStore persists places, answers proximity queries and tracks pending geocoding.
type PlaceStore interface {
	CreatePlace(ctx context.Context, place *models.Place) error
	GetPlace(ctx context.Context, id string) (*models.Place, error)
	ListPlaces(ctx context.Context, limit int) ([]models.Place, error)
	FindPlacesNear(
		ctx context.Context, point models.Point, radiusMeters float64, tags []string, limit int,
	) ([]models.Place, error)
	DeletePlace(ctx context.Context, id string) error
	FetchPlacesForGeocoding(ctx context.Context, limit int) ([]models.GeocodingTask, error)
	UpdatePlaceCoordinates(ctx context.Context, placeID string, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, placeID string, errMsg string) error
}

// SchemeStore persists government schemes.
type SchemeStore interface {
	CreateScheme(ctx context.Context, scheme *models.Scheme) error
	GetScheme(ctx context.Context, id string) (*models.Scheme, error)
	ListSchemes(ctx context.Context) ([]models.Scheme, error)
	DeleteScheme(ctx context.Context, id string) error
}

// AdminStore persists administrator accounts.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Interface groups every store served by the repository.
type Interface interface {
	SOSStore
	VolunteerStore
	PlaceStore
	SchemeStore
	AdminStore
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{
		db:    db,
		log:   log,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID: uuid.NewString,
	}
}

// notFound converts pgx.ErrNoRows into ErrNotFound and wraps any other error with msg.
func notFound(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	return fmt.Errorf("%s: %w", msg, err)
}

// pointFromNullable builds an optional point from nullable longitude/latitude columns.
func pointFromNullable(lng, lat *float64) *models.Point {
	if lng == nil || lat == nil {
		return nil
	}
	point := models.NewPoint(*lng, *lat)

	return &point
}

// nullableCoords splits an optional point into nullable longitude/latitude arguments.
func nullableCoords(point *models.Point) (*float64, *float64) {
	if point == nil {
		return nil, nil
	}
	lng, lat := point.Lng(), point.Lat()

	return &lng, &lat
}
