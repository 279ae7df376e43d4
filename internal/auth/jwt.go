// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	subjectSession = "session"
	subjectAdmin   = "admin"
)

// GenerateSessionToken wraps an anonymous session ID in a signed token so
// the browser cannot forge or swap sessions.
func GenerateSessionToken(sessionID string, secretKey []byte, ttl time.Duration) (string, error) {
	if sessionID == "" {
		return "", errors.New("session ID cannot be empty")
	}

	claims := jwt.MapClaims{
		"sub": subjectSession,
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ValidateSessionToken returns the session ID carried by a valid token.
func ValidateSessionToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := parse(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	if claims["sub"] != subjectSession {
		return "", errors.New("not a session token")
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("invalid session token")
	}
	return sessionID, nil
}

// GenerateAdminToken issues a short-lived token proving a successful admin
// login.
func GenerateAdminToken(secretKey []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subjectAdmin,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ValidateAdminToken reports whether the token is a live admin token.
func ValidateAdminToken(tokenString string, secretKey []byte) error {
	claims, err := parse(tokenString, secretKey)
	if err != nil {
		return err
	}
	if claims["sub"] != subjectAdmin {
		return errors.New("not an admin token")
	}
	return nil
}

func parse(tokenString string, secretKey []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
