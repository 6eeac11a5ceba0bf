package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
)

func newTestService(t *testing.T, expiry time.Duration) *Service {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)
	return NewService("test-secret", expiry, log).(*Service)
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.IssueToken("507f1f77bcf86cd799439011", "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "a@example.com", claims.UserEmail)
}

func TestValidateTokenRejections(t *testing.T) {
	svc := newTestService(t, time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assertAuthError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestService(t, time.Hour)
		other.secret = []byte("another-secret")

		token, err := other.IssueToken("507f1f77bcf86cd799439011", "a@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assertAuthError(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestService(t, -time.Minute)
		token, err := expired.IssueToken("507f1f77bcf86cd799439011", "a@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assertAuthError(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := svc.IssueToken("", "a@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assertAuthError(t, err)
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "507f1f77bcf86cd799439011",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assertAuthError(t, err)
	})
}

func assertAuthError(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeAuthentication, appErr.Type)
}
