package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/jackc/pgx/v5"
)

const volunteerColumns = `id, name, phone, email, city, skills, verified,
		ST_X(location::geometry), ST_Y(location::geometry), created_at`

// CreateVolunteer assigns an identity and creation timestamp to the volunteer and stores it.
func (r *Repository) CreateVolunteer(ctx context.Context, volunteer *models.Volunteer) error {
	query := `
		INSERT INTO volunteers (id, name, phone, email, city, skills, verified, location, created_at)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			CASE WHEN $8::float8 IS NULL OR $9::float8 IS NULL THEN NULL
				ELSE ST_SetSRID(ST_MakePoint($8, $9), 4326)::geography END,
			$10
		);
	`

	if volunteer.Skills == nil {
		volunteer.Skills = []string{}
	}
	id, createdAt := r.newID(), r.now()
	lng, lat := nullableCoords(volunteer.Location)

	_, err := r.db.Exec(ctx, query,
		id, volunteer.Name, volunteer.Phone, volunteer.Email, volunteer.City,
		volunteer.Skills, volunteer.Verified, lng, lat, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert volunteer: %w", err)
	}

	volunteer.ID, volunteer.CreatedAt = id, createdAt

	return nil
}

// GetVolunteer returns the volunteer with the given id or ErrNotFound.
func (r *Repository) GetVolunteer(ctx context.Context, id string) (*models.Volunteer, error) {
	query := `SELECT ` + volunteerColumns + ` FROM volunteers WHERE id = $1;`

	volunteer, err := scanVolunteer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "failed to get volunteer")
	}

	return volunteer, nil
}

// ListVolunteers returns at most limit volunteers.
func (r *Repository) ListVolunteers(ctx context.Context, limit int) ([]models.Volunteer, error) {
	query := `SELECT ` + volunteerColumns + ` FROM volunteers ORDER BY created_at DESC LIMIT $1;`

	return r.queryVolunteers(ctx, query, limit)
}

// FindVolunteersNear returns volunteers whose point lies within radiusMeters of point,
// closest first. Volunteers without a point are never returned.
func (r *Repository) FindVolunteersNear(
	ctx context.Context,
	point models.Point,
	radiusMeters float64,
	limit int,
) ([]models.Volunteer, error) {
	query := `SELECT ` + volunteerColumns + `
		FROM volunteers
		WHERE location IS NOT NULL
			AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) ASC, id
		LIMIT $4;`

	return r.queryVolunteers(ctx, query, point.Lng(), point.Lat(), radiusMeters, limit)
}

func (r *Repository) queryVolunteers(ctx context.Context, query string, args ...any) ([]models.Volunteer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	volunteers := make([]models.Volunteer, 0)
	for rows.Next() {
		volunteer, errScan := scanVolunteer(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", errScan)
		}
		volunteers = append(volunteers, *volunteer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return volunteers, nil
}

func scanVolunteer(row pgx.Row) (*models.Volunteer, error) {
	var (
		volunteer models.Volunteer
		lng, lat  *float64
	)

	err := row.Scan(
		&volunteer.ID, &volunteer.Name, &volunteer.Phone, &volunteer.Email, &volunteer.City,
		&volunteer.Skills, &volunteer.Verified, &lng, &lat, &volunteer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	volunteer.Location = pointFromNullable(lng, lat)
	if volunteer.Skills == nil {
		volunteer.Skills = []string{}
	}

	return &volunteer, nil
}
