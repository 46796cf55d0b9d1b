package dto

import "tillpoint/internal/domain/auth"

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToModel converts the request to the domain payload.
func (r *RegisterRequest) ToModel() auth.RegisterRequest {
	return auth.RegisterRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries a signed token and its user.
type SessionResponse struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

// NewSessionResponse maps a domain session.
func NewSessionResponse(s *auth.Session) SessionResponse {
	return SessionResponse{Token: s.Token, User: s.User}
}
