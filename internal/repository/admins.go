package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/inclusion/internal/models"
)

// CreateAdmin stores a new administrator. A duplicate email yields ErrDuplicate.
func (r *Repository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, role, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	id, createdAt := r.newID(), r.now()

	_, err := r.db.Exec(ctx, query, id, admin.Email, admin.PasswordHash, admin.Role, admin.Name, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert admin: %w", err)
	}

	admin.ID, admin.CreatedAt = id, createdAt

	return nil
}

// GetAdminByEmail returns the administrator registered with email or ErrNotFound.
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, email, password_hash, role, name, created_at
		FROM admins
		WHERE email = $1;
	`

	var admin models.Admin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Role, &admin.Name, &admin.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "failed to get admin")
	}

	return &admin, nil
}
