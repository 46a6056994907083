// Package admintoken issues and validates the HS256 bearer tokens that guard
// the principal-sponsor write routes.
package admintoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "weddingapi/pkg/domain-errors"
)

const (
	// Issuer is stamped into every token and required on validation.
	Issuer = "weddingapi"
	// RoleAdmin is the only role allowed to mutate sponsors.
	RoleAdmin = "admin"
)

// Claims are the JWT claims carried by an admin token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies admin tokens with a shared secret.
type Service struct {
	signingKey []byte
	now        func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(secret string, opts ...Option) *Service {
	s := &Service{signingKey: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints an admin token for subject valid for ttl.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "subject cannot be empty")
	}
	if ttl <= 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "ttl must be positive")
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// Validate parses and verifies a token. Only HS256 tokens from this issuer
// with an expiry and the admin role are accepted.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "empty token")
	}

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "token expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token signature")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "token parse failed")
		}
	}
	if !token.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if claims.Role != RoleAdmin {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token lacks admin role")
	}
	return claims, nil
}

// ValidateAdmin adapts Validate to the auth middleware.
func (s *Service) ValidateAdmin(tokenString string) (string, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
