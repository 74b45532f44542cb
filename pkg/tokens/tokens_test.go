package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestSignAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	p := Principal{ClientID: 42, Email: "diogorolins@gmail.com", Roles: []string{"CLIENT"}}
	exp := time.Now().Add(15 * time.Minute)

	token, err := SignAccessToken(p, exp, secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)

	got, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(Principal{ClientID: 1}, time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(Principal{ClientID: 1}, time.Now().Add(time.Minute), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other"))
	require.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	token, err := SignRefreshToken(7, "jti-1", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestPrincipal_CanAccessClient(t *testing.T) {
	t.Parallel()

	admin := &Principal{ClientID: 2, Roles: []string{"CLIENT", AdminRole}}
	client := &Principal{ClientID: 1, Roles: []string{"CLIENT"}}
	var anonymous *Principal

	assert.True(t, admin.CanAccessClient(1))
	assert.True(t, client.CanAccessClient(1))
	assert.False(t, client.CanAccessClient(2))
	assert.False(t, anonymous.CanAccessClient(1))
	assert.False(t, anonymous.IsAdmin())
}
