package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// NewDatabase opens a pgx connection pool and verifies it with a ping.
func NewDatabase(host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     name,
		RawQuery: "sslmode=disable",
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// schemaStatements create every collection together with the proximity index over its
// geographic point. They are idempotent and run in order on every start.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis;`,
	`CREATE TABLE IF NOT EXISTS sos_alerts (
		id uuid PRIMARY KEY,
		user_id text,
		message text NOT NULL DEFAULT '',
		location geography(Point, 4326) NOT NULL,
		status text NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'acknowledged', 'closed')),
		metadata jsonb NOT NULL DEFAULT '{}'::jsonb,
		acknowledged_by text,
		acknowledged_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS sos_alerts_location_idx ON sos_alerts USING GIST (location);`,
	`CREATE INDEX IF NOT EXISTS sos_alerts_status_created_idx ON sos_alerts (status, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS volunteers (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		phone text NOT NULL DEFAULT '',
		email text NOT NULL DEFAULT '',
		city text NOT NULL DEFAULT '',
		skills text[] NOT NULL DEFAULT '{}',
		verified boolean NOT NULL DEFAULT false,
		location geography(Point, 4326),
		created_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS volunteers_location_idx ON volunteers USING GIST (location);`,
	`CREATE TABLE IF NOT EXISTS places (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		description text NOT NULL DEFAULT '',
		address text NOT NULL DEFAULT '',
		location geography(Point, 4326),
		tags text[] NOT NULL DEFAULT '{}',
		photos text[] NOT NULL DEFAULT '{}',
		verified boolean NOT NULL DEFAULT false,
		added_by uuid,
		geocoding_attempts integer NOT NULL DEFAULT 0,
		geocoding_error text,
		created_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS places_location_idx ON places USING GIST (location);`,
	`CREATE TABLE IF NOT EXISTS schemes (
		id uuid PRIMARY KEY,
		title text NOT NULL,
		description text NOT NULL DEFAULT '',
		category text NOT NULL DEFAULT '',
		organization text NOT NULL DEFAULT '',
		url text NOT NULL DEFAULT '',
		start_date timestamptz,
		end_date timestamptz,
		location text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS admins (
		id uuid PRIMARY KEY,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		role text NOT NULL DEFAULT 'admin',
		name text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	);`,
}

// EnsureSchema creates the tables and proximity indexes if they do not exist yet.
// It must complete before the first proximity query is served.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	r.log.InfoContext(ctx, "Database schema is up to date", "statements", len(schemaStatements))

	return nil
}

// isUniqueViolation reports whether err was caused by a unique constraint.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
