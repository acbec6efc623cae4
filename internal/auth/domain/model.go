package domain

import (
	"errors"
	"time"
)

// DefaultAdminPassword is accepted until an admin sets a new one.
const DefaultAdminPassword = "admin123"

// MinPasswordLength applies to new admin passwords.
const MinPasswordLength = 6

// MaxPasswordLength is the bcrypt input limit in bytes.
const MaxPasswordLength = 72

var (
	ErrSettingsNotFound = errors.New("admin settings not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
)

// AdminSettings is the per-org admin credential row.
type AdminSettings struct {
	OrgID        string    `json:"org_id" db:"org_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
