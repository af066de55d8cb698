package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestParseTokenInvalidFlag(t *testing.T) {
	originalParse := parseTokenWithClaims
	parseTokenWithClaims = func(tokenStr string, claims *Claims, secret []byte) (*jwt.Token, error) {
		return &jwt.Token{Valid: false}, nil
	}
	defer func() { parseTokenWithClaims = originalParse }()

	_, err := ParseToken("token", []byte("secret"))
	assert.Error(t, err)
}
