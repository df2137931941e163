package jwt

import (
	"strings"
	"testing"
	"time"

	"clinic-records/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = time.Hour

func newTestService(now *time.Time) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: testTTL}).
		WithClock(func() time.Time { return *now })
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestService(&now)
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "drhouse", []string{"ROLE_DOCTOR"})
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "drhouse", claims.Subject)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"ROLE_DOCTOR"}, claims.Roles)
	assert.True(t, claims.IssuedAt.Time.Equal(now))
	assert.True(t, claims.ExpiresAt.Time.Equal(now.Add(testTTL)))
}

func TestValidateToken_ExpiryBoundary(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0)
	now := issued
	svc := newTestService(&now)

	token, _, err := svc.GenerateAccessToken(uuid.New(), "nurse", nil)
	require.NoError(t, err)

	now = issued.Add(testTTL - time.Second)
	_, err = svc.ValidateToken(token)
	assert.NoError(t, err)

	now = issued.Add(testTTL + time.Second)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_SignatureMismatch(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestService(&now)
	other := NewJWTService(config.JWTConfig{Secret: "another-secret", AccessExpiry: testTTL}).
		WithClock(func() time.Time { return now })

	token, _, err := other.GenerateAccessToken(uuid.New(), "intruder", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestValidateToken_Malformed(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestService(&now)

	for _, token := range []string{"", "not-a-token", strings.Repeat("a.", 2) + "b"} {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}
