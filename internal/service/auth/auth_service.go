package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"travely-api/internal/domain"
	"travely-api/internal/service"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
)

// tokenClaims is the signed payload of an issued token.
type tokenClaims struct {
	UserEmail string `json:"userEmail"`
	jwt.RegisteredClaims
}

// Service implements the AuthService interface with HS256 tokens
type Service struct {
	secret []byte
	expiry time.Duration
	logger *logger.Logger
}

// NewService creates a new auth service
func NewService(secret string, expiry time.Duration, log *logger.Logger) service.AuthService {
	return &Service{
		secret: []byte(secret),
		expiry: expiry,
		logger: log,
	}
}

// IssueToken signs a token carrying the user's id and email
func (s *Service) IssueToken(userID, userEmail string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserEmail: userEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign token")
		return "", errors.NewInternalError("Failed to issue token", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token
func (s *Service) ValidateToken(tokenString string) (*domain.AuthClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.WithError(err).Debug("Token validation failed")
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}

	return &domain.AuthClaims{
		UserID:    claims.Subject,
		UserEmail: claims.UserEmail,
	}, nil
}
