package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/repository"
)

// TokenIssuer signs access tokens for authenticated administrators.
type TokenIssuer interface {
	Issue(id, email, role string) (string, error)
}

// AdminCredentials is the body of admin registration and login.
type AdminCredentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name"     validate:"max=200"`
}

const msgAdminExists = "Admin exists"

var registerAdminMessages = messages{
	"email.required":    "email & password required",
	"password.required": "email & password required",
	"email":             "invalid email",
	"password":          "password must be 6 to 72 characters",
}

// AdminService registers administrators and issues their tokens.
type AdminService struct {
	log    *slog.Logger
	store  repository.AdminStore
	tokens TokenIssuer
}

// NewAdminService creates a new AdminService.
func NewAdminService(log *slog.Logger, store repository.AdminStore, tokens TokenIssuer) *AdminService {
	return &AdminService{log: log, store: store, tokens: tokens}
}

// Register creates an administrator. Emails are compared case-insensitively.
func (s *AdminService) Register(ctx context.Context, in AdminCredentials) (*models.Admin, error) {
	in.Email = normalizeEmail(in.Email)
	if err := check(in, registerAdminMessages); err != nil {
		return nil, err
	}

	_, err := s.store.GetAdminByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, invalid(msgAdminExists)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{Email: in.Email, PasswordHash: hash, Role: models.DefaultAdminRole, Name: in.Name}
	if err = s.store.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid(msgAdminExists)
		}
		return nil, fmt.Errorf("failed to register admin: %w", err)
	}
	s.log.InfoContext(ctx, "Admin registered", "id", admin.ID)

	return admin, nil
}

// Login verifies credentials and returns a signed token.
func (s *AdminService) Login(ctx context.Context, in AdminCredentials) (string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", ErrInvalidCredentials
	}

	admin, err := s.store.GetAdminByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up admin: %w", err)
	}

	if !auth.ComparePassword(admin.PasswordHash, in.Password) {
		s.log.WarnContext(ctx, "Admin login rejected", "id", admin.ID)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// EnsureAdmin seeds an administrator unless one with the same email already exists.
// It reports whether a new account was created.
func (s *AdminService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := s.Register(ctx, AdminCredentials{Email: email, Password: password, Name: "Admin"})
	var verr *ValidationError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &verr) && verr.Msg == msgAdminExists:
		s.log.InfoContext(ctx, "Admin exists, skipping seed")
		return false, nil
	default:
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
