// Package auth contains authentication and authorization logic: user
// registration and login, the bearer-token codec, and the request
// authentication middleware that guards protected routes.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wiryawan46/instagram-clone-be/config"
)

// Token verification failure kinds. They are distinguished so the middleware
// can log what actually went wrong, even though all of them surface to the
// client as the same authentication failure.
var (
	// ErrTokenMalformed means the token is not a syntactically valid JWT.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired means the token was valid once but its expiry passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignature means the signature does not match the signing secret.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrTokenInvalid covers any other verification failure.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the payload carried by issued tokens: the user identifier plus
// the registered issued-at/expiry claims.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenCodec encodes a user identifier into a signed, expiring bearer token
// and decodes it back. It is stateless: every operation is a pure function of
// the payload and the process-wide signing secret, so the server needs no
// session table and cannot revoke a token before its natural expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec from the auth configuration.
func NewTokenCodec(cfg *config.AuthConfig) *TokenCodec {
	return &TokenCodec{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenDuration,
	}
}

// Issue produces a signed token binding the given user identifier. The token
// carries issued-at and expiry claims and is signed with HS256.
func (c *TokenCodec) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and verifies a token string and returns the user identifier
// it binds. Verification is deterministic and has no side effects; failures
// are one of ErrTokenMalformed, ErrTokenExpired, ErrTokenSignature or
// ErrTokenInvalid.
func (c *TokenCodec) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, fmt.Errorf("%w: %v", ErrTokenSignature, err)
		default:
			return 0, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
	}

	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	// A token without a user identifier cannot authenticate anyone, whatever
	// its signature says.
	if claims.UserID == 0 {
		return 0, fmt.Errorf("%w: user_id claim is missing", ErrTokenMalformed)
	}

	return claims.UserID, nil
}
