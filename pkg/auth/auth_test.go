package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/moducation/library-api/pkg/auth"
)

func TestToken_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token, expiresIn, err := auth.NewToken(42, now)
	require.NoError(t, err)
	require.Equal(t, now.Add(auth.TokenTTL).Unix(), expiresIn)

	claims := new(auth.Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return auth.JWTKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, int64(42), claims.UserID)
}

func TestAuthContext(t *testing.T) {
	t.Parallel()

	_, ok := auth.UserID(context.Background())
	require.False(t, ok)

	ctx := auth.SetAuthContext(context.Background(), 7)
	id, ok := auth.UserID(ctx)
	require.True(t, ok)
	require.Equal(t, int64(7), id)
}
