package utils

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/config"
)

func testTokenService(minutes int) *TokenService {
	return NewTokenService(&config.Config{
		SecretKey:                "test-secret",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: minutes,
	})
}

func TestIssueAndVerify(t *testing.T) {
	svc := testTokenService(30)

	token, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := testTokenService(30)
	// Issue as if 31 minutes ago, so the token is already past its ttl
	svc.Now = func() time.Time { return time.Now().Add(-31 * time.Minute) }

	token, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	var aerr *apperr.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, apperr.ExpiredToken, aerr.Kind)
}

func TestVerifyWrongKey(t *testing.T) {
	svc := testTokenService(30)
	other := NewTokenService(&config.Config{
		SecretKey:                "different-secret",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 30,
	})

	token, err := other.Issue("user@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	var aerr *apperr.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, apperr.InvalidToken, aerr.Kind)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := testTokenService(30)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		var aerr *apperr.AuthError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, apperr.InvalidToken, aerr.Kind)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	svc := testTokenService(30)

	// Signed correctly but carrying no subject claim
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(30 * time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	var aerr *apperr.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, apperr.MissingSubject, aerr.Kind)
}

func TestVerifyUnsignedToken(t *testing.T) {
	svc := testTokenService(30)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": time.Now().Add(30 * time.Minute).Unix(),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	var aerr *apperr.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, apperr.InvalidToken, aerr.Kind)
}
