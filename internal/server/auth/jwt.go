// Package auth implements the identity verifier: it maps a bearer credential
// to a stable user identifier (plus an optional email claim). Any malformed,
// expired, or unverifiable credential is an authentication failure; callers
// never retry and never fall back.
package auth

import (
	"errors"
	"time"

	"github.com/boksu/booksum/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the user identity
// and informational email claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
}

// Identity is the verified result of a bearer credential.
type Identity struct {
	UserID string
	Email  string
}

// GenerateToken mints a signed HS256 token for the given user. Used by tests
// and by token-issuing tooling; the server itself only verifies.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken validates tokenString against secretKey and returns the
// identity it asserts. Expired tokens yield common.ErrTokenExpired, any
// other verification failure yields common.ErrInvalidToken.
func VerifyToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
