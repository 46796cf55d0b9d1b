// Package auth provides user accounts, password verification and
// JWT-based session tokens.
package auth

import (
	"net/mail"
	"strings"
	"time"

	"tillpoint/internal/core/apperror"
	appctx "tillpoint/internal/core/context"
	"tillpoint/internal/core/id"
)

const minPasswordLength = 6

// User is a till operator account. PasswordHash is a bcrypt digest and
// never leaves the service layer.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Normalize lowercases the email and trims whitespace from all fields.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.TrimSpace(r.Role)
}

// Validate checks the registration payload. An empty role defaults to staff.
func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return apperror.NewValidation("Please provide your name")
	}
	if r.Email == "" {
		return apperror.NewValidation("Please provide your email")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return apperror.NewValidation("Please provide a valid email")
	}
	if len(r.Password) < minPasswordLength {
		return apperror.NewValidation("Password must be at least 6 characters")
	}
	if r.Role == "" {
		r.Role = appctx.RoleStaff
	}
	if r.Role != appctx.RoleStaff && r.Role != appctx.RoleAdmin {
		return apperror.NewValidation("Role must be staff or admin").WithDetail("role", r.Role)
	}
	return nil
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
