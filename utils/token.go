package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims identifies the acting user. RegisteredClaims.ID carries the token
// id used for revocation.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

var parseTokenWithClaims = func(tokenStr string, claims *Claims, secret []byte) (*jwt.Token, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	return parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
}

// GenerateToken creates a signed JWT for the provided claims.
func GenerateToken(claims Claims, ttl time.Duration, issuer string, secret []byte) (string, error) {
	now := time.Now()
	claims.Issuer = issuer
	claims.Subject = claims.UserID
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a token and returns its claims if valid.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := parseTokenWithClaims(tokenStr, claims, secret)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user")
	}
	return claims, nil
}
