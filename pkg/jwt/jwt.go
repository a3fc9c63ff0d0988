package jwt

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const Issuer = "go-inventory-dashboard"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing session token")
)

// Claims identifies one open dashboard. There are no user accounts; the
// token only proves the bearer opened the session.
type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// GetSecretKey returns the signing secret from SESSION_SECRET or a default
func GetSecretKey() []byte {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dashboard-session-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken signs a session token valid for ttl
func GenerateToken(sessionID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(GetSecretKey())
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return signed, nil
}

// ValidateToken parses and validates a session token
func ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetSecretKey(), nil
	}, jwt.WithIssuer(Issuer))

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.SessionID != uuid.Nil {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
