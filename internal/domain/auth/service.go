package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/pkg/logger"
)

// Session is the result of a successful registration or login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Service implements account registration and credential verification.
type Service struct {
	repo   Repository
	tokens *JWTService
}

func NewService(repo Repository, tokens *JWTService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account and returns a signed session for it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now()
	user := &User{
		ID:           id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return &Session{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed session.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperror.NewValidation("Please provide email and password")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("Incorrect email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewUnauthorized("Incorrect email or password")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &Session{Token: token, User: user}, nil
}

// GetByID returns the account behind an authenticated session.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}
