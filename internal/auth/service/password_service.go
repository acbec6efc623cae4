package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mys-constructora/backoffice/internal/auth/domain"
)

type SettingsStore interface {
	Get(ctx context.Context, orgID string) (*domain.AdminSettings, error)
	SetPasswordHash(ctx context.Context, orgID, hash string) error
}

// PasswordService checks and rotates the single back-office admin password.
type PasswordService struct {
	store SettingsStore
	orgID string
}

func NewPasswordService(store SettingsStore, orgID string) *PasswordService {
	return &PasswordService{store: store, orgID: orgID}
}

// HashPassword returns a bcrypt hash with the default cost.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain is the current admin password. With no stored
// hash the default password is accepted.
func (s *PasswordService) Verify(ctx context.Context, plain string) (bool, error) {
	settings, err := s.store.Get(ctx, s.orgID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return plain == domain.DefaultAdminPassword, nil
	}
	if err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(settings.PasswordHash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	return true, nil
}

// Change replaces the admin password after checking the current one.
func (s *PasswordService) Change(ctx context.Context, current, next string) error {
	ok, err := s.Verify(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidPassword
	}
	if err := checkLength(next); err != nil {
		return err
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.store.SetPasswordHash(ctx, s.orgID, hash)
}

// Set stores a new password without checking the current one. Used by the CLI.
func (s *PasswordService) Set(ctx context.Context, next string) error {
	if err := checkLength(next); err != nil {
		return err
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.store.SetPasswordHash(ctx, s.orgID, hash)
}

func checkLength(next string) error {
	switch {
	case len(next) < domain.MinPasswordLength:
		return domain.ErrPasswordTooShort
	case len(next) > domain.MaxPasswordLength:
		return domain.ErrPasswordTooLong
	}
	return nil
}
