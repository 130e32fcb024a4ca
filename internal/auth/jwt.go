package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, from least to most suspicious. The middleware maps
// all of them to 401 but keeps the messages distinct.
var (
	ErrTokenMissing   = errors.New("authorization token is required")
	ErrTokenMalformed = errors.New("malformed authorization token")
	ErrTokenExpired   = errors.New("authorization token has expired")
	ErrTokenInvalid   = errors.New("invalid authorization token")
)

const tokenTTL = time.Hour * 168 // 7 days

var jwtSecret string

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

// GenerateToken issues a stateless HS256 credential binding the user id to a
// 7-day expiry. There is no server-side session and no revocation list.
func GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyToken returns the user id embedded in a valid token. The caller must
// still confirm that the user exists.
func VerifyToken(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrTokenMissing
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		default:
			return 0, ErrTokenInvalid
		}
	}

	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return 0, ErrTokenInvalid
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return 0, ErrTokenInvalid
	}

	return uint(userIDFloat), nil
}
