// internal/common/utils/jwt.go
// JWT verification shared by the auth middleware.

package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTClaims are the claims this API cares about.
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Type   string `json:"type"` // "access" or "refresh"
}

// ValidateJWT verifies signature and expiry and returns the claims.
func ValidateJWT(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims := &JWTClaims{}

	// The issuing service encodes user_id as a string.
	switch v := mapClaims["user_id"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad user_id claim", ErrInvalidToken)
		}
		claims.UserID = id
	case float64:
		claims.UserID = int64(v)
	default:
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if tokenType, ok := mapClaims["type"].(string); ok {
		claims.Type = tokenType
	}

	return claims, nil
}
