package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTKey signs session tokens. Overridable for deployments via JWT_KEY.
var JWTKey = []byte("moducation-library")

func init() {
	if key := os.Getenv("JWT_KEY"); key != "" {
		JWTKey = []byte(key)
	}
}

const TokenTTL = 24 * time.Hour

// Claims carry the authenticated user's identifier, the session key.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// NewToken issues a signed session token for the given user id.
// It returns the token and its expiration as a unix timestamp.
func NewToken(userID int64, now time.Time) (string, int64, error) {
	expiresAt := now.Add(TokenTTL)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTKey)
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.Unix(), nil
}

type userIDKey struct{}

func SetAuthContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
