package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"backoffice/internal/models"
)

// Claims carries the restaurant session inside the access token.
type Claims struct {
	RestaurantName string `json:"restaurant_name"`
	jwt.RegisteredClaims
}

// Session rebuilds the tenant from the token subject.
func (c *Claims) Session() (models.Session, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return models.Session{}, errors.New("invalid token subject")
	}
	return models.Session{RestaurantID: id, RestaurantName: c.RestaurantName}, nil
}

// TTL is the time left before the token expires.
func (c *Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// GenerateToken signs an HS256 access token for session. It returns the
// token and its id.
func GenerateToken(secret []byte, session models.Session, ttl time.Duration) (string, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := &Claims{
		RestaurantName: session.RestaurantName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(session.RestaurantID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// VerifyJWT parses and validates a token string.
func VerifyJWT(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
