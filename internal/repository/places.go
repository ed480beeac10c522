package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/jackc/pgx/v5"
)

// maxGeocodingAttempts bounds how many times the geocoder retries a single place.
const maxGeocodingAttempts = 5

const placeColumns = `id, name, description, address,
		ST_X(location::geometry), ST_Y(location::geometry),
		tags, photos, verified, added_by, created_at`

// CreatePlace assigns an identity and creation timestamp to the place and stores it.
// A place without a location is stored as pending geocoding.
func (r *Repository) CreatePlace(ctx context.Context, place *models.Place) error {
	query := `
		INSERT INTO places (id, name, description, address, location, tags, photos, verified, added_by, created_at)
		VALUES (
			$1, $2, $3, $4,
			CASE WHEN $5::float8 IS NULL OR $6::float8 IS NULL THEN NULL
				ELSE ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography END,
			$7, $8, $9, $10, $11
		);
	`

	if place.Tags == nil {
		place.Tags = []string{}
	}
	if place.Photos == nil {
		place.Photos = []string{}
	}
	id, createdAt := r.newID(), r.now()
	lng, lat := nullableCoords(place.Location)

	_, err := r.db.Exec(ctx, query,
		id, place.Name, place.Description, place.Address, lng, lat,
		place.Tags, place.Photos, place.Verified, place.AddedBy, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}

	place.ID, place.CreatedAt = id, createdAt

	return nil
}

// GetPlace returns the place with the given id or ErrNotFound.
func (r *Repository) GetPlace(ctx context.Context, id string) (*models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1;`

	place, err := scanPlace(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "failed to get place")
	}

	return place, nil
}

// ListPlaces returns places ordered from newest to oldest.
func (r *Repository) ListPlaces(ctx context.Context, limit int) ([]models.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY created_at DESC LIMIT $1;`

	return r.queryPlaces(ctx, query, limit)
}

// FindPlacesNear returns places within radiusMeters of point, closest first.
// When tags is not empty only places carrying at least one of them are returned.
func (r *Repository) FindPlacesNear(
	ctx context.Context,
	point models.Point,
	radiusMeters float64,
	tags []string,
	limit int,
) ([]models.Place, error) {
	query := `SELECT ` + placeColumns + `
		FROM places
		WHERE location IS NOT NULL
			AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
			AND (cardinality($4::text[]) = 0 OR tags && $4::text[])
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) ASC, id
		LIMIT $5;`

	if tags == nil {
		tags = []string{}
	}

	return r.queryPlaces(ctx, query, point.Lng(), point.Lat(), radiusMeters, tags, limit)
}

// DeletePlace removes a place. An unknown id yields ErrNotFound.
func (r *Repository) DeletePlace(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// FetchPlacesForGeocoding retrieves places that still need coordinates.
// It returns places that have no location, a non-empty address and fewer than
// maxGeocodingAttempts failed attempts, oldest first, limited to the specified count.
func (r *Repository) FetchPlacesForGeocoding(ctx context.Context, limit int) ([]models.GeocodingTask, error) {
	var tasks []models.GeocodingTask
	query := `
		SELECT id, address
		FROM places
		WHERE
			location IS NULL
			AND geocoding_attempts < $1
			AND address <> ''
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, maxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query places pending geocoding: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.GeocodingTask
		if errScan := rows.Scan(&task.PlaceID, &task.Address); errScan != nil {
			return nil, fmt.Errorf("failed to scan place pending geocoding: %w", errScan)
		}
		r.log.DebugContext(ctx, "A place without coordinates has been received.",
			"ID", task.PlaceID, "Address", task.Address)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// UpdatePlaceCoordinates stores the geocoded point of a place and clears its geocoding error.
func (r *Repository) UpdatePlaceCoordinates(ctx context.Context, placeID string, coords models.Coordinates) error {
	query := `
		UPDATE places
		SET
			location = ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			geocoding_error = NULL
		WHERE
			id = $3;
	`

	_, err := r.db.Exec(ctx, query, coords.Longitude, coords.Latitude, placeID)
	if err != nil {
		return fmt.Errorf("failed to update place coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the geocoding attempt count of a place and records the error.
func (r *Repository) IncrementFailureCount(ctx context.Context, placeID string, errMsg string) error {
	query := `
		UPDATE places
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, placeID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

func (r *Repository) queryPlaces(ctx context.Context, query string, args ...any) ([]models.Place, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places := make([]models.Place, 0)
	for rows.Next() {
		place, errScan := scanPlace(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan place: %w", errScan)
		}
		places = append(places, *place)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return places, nil
}

func scanPlace(row pgx.Row) (*models.Place, error) {
	var (
		place    models.Place
		lng, lat *float64
	)

	err := row.Scan(
		&place.ID, &place.Name, &place.Description, &place.Address, &lng, &lat,
		&place.Tags, &place.Photos, &place.Verified, &place.AddedBy, &place.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	place.Location = pointFromNullable(lng, lat)
	if place.Tags == nil {
		place.Tags = []string{}
	}
	if place.Photos == nil {
		place.Photos = []string{}
	}

	return &place, nil
}
