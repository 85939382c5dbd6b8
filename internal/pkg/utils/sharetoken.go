package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	ShareScopeVote    = "vote"
	ShareScopeResults = "results"
)

// GenerateShareJWT signs a token binding one block to one scope so share
// links cannot be replayed across events.
func GenerateShareJWT(blockID, scope, secret string, jwtExpiryTime int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"block_id": blockID,
		"scope":    scope,
		"exp":      time.Now().Add(time.Duration(jwtExpiryTime) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseShareJWT verifies a share token and returns the block it grants
// access to, along with its scope.
func ParseShareJWT(tokenString, secret string) (blockID string, scope string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		blockID, blockOK := claims["block_id"].(string)
		scope, scopeOK := claims["scope"].(string)
		if blockOK && scopeOK {
			return blockID, scope, nil
		}
	}

	return "", "", errors.New("invalid token")
}
