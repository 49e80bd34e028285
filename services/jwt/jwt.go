package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// AccessTokenValidity is how long issued tokens stay valid.
const AccessTokenValidity = time.Hour * 24

// GenerateToken issues a signed access token carrying the user's identity
// and role.
func GenerateToken(email, secret string, userID uint, roleName string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is empty")
	}

	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"role":  roleName,
		"exp":   time.Now().Add(AccessTokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims verifies the token signature and expiry and returns
// its claims.
func ValidateAndGetClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
