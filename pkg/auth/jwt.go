// Package auth provides password hashing and signed-token issuance for the
// two principal kinds. User and Admin tokens share one code path but carry
// the kind in the claims, so a token issued for one kind can never be
// accepted on the other's routes.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/akxton/config"
)

// Kind identifies the principal space a token belongs to.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// TTL returns the token lifetime for the kind.
func (k Kind) TTL() time.Duration {
	if k == KindAdmin {
		return 7 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// Claims holds the typed JWT payload.
type Claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("auth: invalid token")

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed JWT for the given principal.
func GenerateToken(kind Kind, principalID string) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			ExpiresAt: jwt.NewNumericDate(now.Add(kind.TTL())),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string, returning its claims.
// Malformed, mis-signed, and expired tokens all return ErrInvalidToken.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
