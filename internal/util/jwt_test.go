package util

import (
	"bootcamp_lms_backend/internal/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-test-secret-long-enough-to-sign-with"

func testUser() *model.User {
	u := &model.User{
		Name:  "Ada Student",
		Email: "ada@example.com",
		Role:  model.Instructor,
	}
	u.ID = 42
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Instructor, claims.Role)
	assert.Equal(t, "Ada Student", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWTRejectsForeignIssuer(t *testing.T) {
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseJWT(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWTRejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWT(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
