package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/jackc/pgx/v5"
)

const sosColumns = `id, user_id, message, ST_X(location::geometry), ST_Y(location::geometry),
		status, metadata, acknowledged_by, acknowledged_at, created_at`

// CreateSOS assigns an identity and creation timestamp to the alert and stores it.
func (r *Repository) CreateSOS(ctx context.Context, sos *models.SOS) error {
	query := `
		INSERT INTO sos_alerts (id, user_id, message, location, status, metadata, created_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6, $7, $8);
	`

	if sos.Metadata == nil {
		sos.Metadata = map[string]any{}
	}
	id, createdAt := r.newID(), r.now()

	_, err := r.db.Exec(ctx, query,
		id, sos.UserID, sos.Message, sos.Location.Lng(), sos.Location.Lat(),
		string(sos.Status), sos.Metadata, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sos alert: %w", err)
	}

	sos.ID, sos.CreatedAt = id, createdAt
	r.log.DebugContext(ctx, "SOS alert stored", "id", id, "status", sos.Status)

	return nil
}

// GetSOS returns the alert with the given id or ErrNotFound.
func (r *Repository) GetSOS(ctx context.Context, id string) (*models.SOS, error) {
	query := `SELECT ` + sosColumns + ` FROM sos_alerts WHERE id = $1;`

	sos, err := scanSOS(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "failed to get sos alert")
	}

	return sos, nil
}

// ListSOS returns alerts ordered from newest to oldest. An empty status returns every alert.
func (r *Repository) ListSOS(ctx context.Context, status models.SOSStatus, limit int) ([]models.SOS, error) {
	query := `SELECT ` + sosColumns + `
		FROM sos_alerts
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2;`

	rows, err := r.db.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sos alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]models.SOS, 0)
	for rows.Next() {
		sos, errScan := scanSOS(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan sos alert: %w", errScan)
		}
		alerts = append(alerts, *sos)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return alerts, nil
}

// UpdateSOSStatus changes only the status of an alert whose current status is one of from,
// and returns the updated record. It never inserts: an unknown id, or an alert whose status
// is no longer in from, yields ErrNotFound.
func (r *Repository) UpdateSOSStatus(
	ctx context.Context,
	id string,
	status models.SOSStatus,
	from []models.SOSStatus,
) (*models.SOS, error) {
	query := `UPDATE sos_alerts SET status = $1 WHERE id = $2 AND status = ANY($3) RETURNING ` + sosColumns + `;`

	current := make([]string, len(from))
	for i, s := range from {
		current[i] = string(s)
	}

	sos, err := scanSOS(r.db.QueryRow(ctx, query, string(status), id, current))
	if err != nil {
		return nil, notFound(err, "failed to update sos status")
	}

	return sos, nil
}

// AcknowledgeSOS records which volunteer acknowledged an open alert.
// Alerts that are missing or no longer open yield ErrNotFound.
func (r *Repository) AcknowledgeSOS(ctx context.Context, id, volunteerID string) (*models.SOS, error) {
	query := `
		UPDATE sos_alerts
		SET status = 'acknowledged', acknowledged_by = $1, acknowledged_at = $2
		WHERE id = $3 AND status = 'open'
		RETURNING ` + sosColumns + `;`

	sos, err := scanSOS(r.db.QueryRow(ctx, query, volunteerID, r.now(), id))
	if err != nil {
		return nil, notFound(err, "failed to acknowledge sos alert")
	}

	return sos, nil
}

func scanSOS(row pgx.Row) (*models.SOS, error) {
	var (
		sos      models.SOS
		lng, lat float64
		status   string
		ackAt    *time.Time
	)

	err := row.Scan(
		&sos.ID, &sos.UserID, &sos.Message, &lng, &lat,
		&status, &sos.Metadata, &sos.AcknowledgedBy, &ackAt, &sos.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	sos.Location = models.NewPoint(lng, lat)
	sos.Status = models.SOSStatus(status)
	sos.AcknowledgedAt = ackAt
	if sos.Metadata == nil {
		sos.Metadata = map[string]any{}
	}

	return &sos, nil
}
