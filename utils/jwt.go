package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs a session token carrying the user's id and username.
// Production tokens get a shorter lifetime.
func GenerateJWT(userID uint, username string) (string, error) {
	ttl := 72 * time.Hour
	if os.Getenv("APP_ENV") == "production" {
		ttl = 12 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
