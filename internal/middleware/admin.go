// File: internal/middleware/admin.go
package middleware

import (
	"log"
	"net/http"

	"literarychat/internal/auth"
)

// AdminCookieName carries the token issued by a successful admin login.
const AdminCookieName = "admin_token"

// RequireAdmin guards the administrative routes. It only checks the signed
// admin token; issuing the token is the login handler's job.
func RequireAdmin(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AdminCookieName)
			if err != nil {
				log.Printf("[AdminMiddleware] Missing admin token for path %s", r.URL.Path)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			if err := auth.ValidateAdminToken(cookie.Value, secretKey); err != nil {
				log.Printf("[AdminMiddleware] Rejected admin token for path %s: %v", r.URL.Path, err)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
