package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tillpoint/internal/core/apperror"
	appctx "tillpoint/internal/core/context"
)

// JWTConfig holds token signing parameters.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Claims is the signed token payload identifying a till operator.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HS256-signed session tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTService(cfg JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// GenerateToken signs a session token for the user.
func (s *JWTService) GenerateToken(u *User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID.String(),
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("sign token: %w", err))
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning the caller identity.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid or expired token").WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.NewUnauthorized("Invalid or expired token")
	}

	return &appctx.UserContext{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
