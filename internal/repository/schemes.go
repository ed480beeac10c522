package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/jackc/pgx/v5"
)

const schemeColumns = `id, title, description, category, organization, url,
		start_date, end_date, location, created_at`

// CreateScheme assigns an identity and creation timestamp to the scheme and stores it.
func (r *Repository) CreateScheme(ctx context.Context, scheme *models.Scheme) error {
	query := `
		INSERT INTO schemes (id, title, description, category, organization, url, start_date, end_date, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	id, createdAt := r.newID(), r.now()

	_, err := r.db.Exec(ctx, query,
		id, scheme.Title, scheme.Description, scheme.Category, scheme.Organization, scheme.URL,
		scheme.StartDate, scheme.EndDate, scheme.Location, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scheme: %w", err)
	}

	scheme.ID, scheme.CreatedAt = id, createdAt

	return nil
}

// GetScheme returns the scheme with the given id or ErrNotFound.
func (r *Repository) GetScheme(ctx context.Context, id string) (*models.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes WHERE id = $1;`

	scheme, err := scanScheme(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "failed to get scheme")
	}

	return scheme, nil
}

// ListSchemes returns every scheme, latest start date first.
func (r *Repository) ListSchemes(ctx context.Context) ([]models.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes ORDER BY start_date DESC NULLS LAST, created_at DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schemes: %w", err)
	}
	defer rows.Close()

	schemes := make([]models.Scheme, 0)
	for rows.Next() {
		scheme, errScan := scanScheme(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan scheme: %w", errScan)
		}
		schemes = append(schemes, *scheme)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return schemes, nil
}

// DeleteScheme removes a scheme. An unknown id yields ErrNotFound.
func (r *Repository) DeleteScheme(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM schemes WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scheme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanScheme(row pgx.Row) (*models.Scheme, error) {
	var scheme models.Scheme

	err := row.Scan(
		&scheme.ID, &scheme.Title, &scheme.Description, &scheme.Category, &scheme.Organization,
		&scheme.URL, &scheme.StartDate, &scheme.EndDate, &scheme.Location, &scheme.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &scheme, nil
}
