// File: internal/middleware/session.go
package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"literarychat/internal/auth"
)

const (
	// SessionCookieName carries the signed anonymous session token.
	SessionCookieName = "chat_session"

	sessionTTL = 30 * 24 * time.Hour
)

// EnsureSession guarantees every request carries an anonymous session ID.
// A valid cookie is reused; a missing or tampered cookie is silently
// replaced with a fresh session. There is no login, so this never redirects.
func EnsureSession(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if sessionID, err := auth.ValidateSessionToken(cookie.Value, secretKey); err == nil {
					next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
					return
				}
				log.Printf("[SessionMiddleware] Replacing invalid session cookie from %s", r.RemoteAddr)
			}

			sessionID := uuid.NewString()
			token, err := auth.GenerateSessionToken(sessionID, secretKey, sessionTTL)
			if err != nil {
				log.Printf("[SessionMiddleware] Failed to sign session token: %v", err)
				http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(sessionTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
		})
	}
}
