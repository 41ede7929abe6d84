package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
)

// AdminPasswordHeader carries the shared admin secret.
const AdminPasswordHeader = "X-Admin-Password"

// AdminAuth guards the admin routes with a shared secret, read through secret
// on every request so it can be rotated at runtime. An empty secret disables
// the admin surface.
func AdminAuth(secret func() string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expected := secret()
			if expected == "" {
				WriteError(w, appErrors.Unavailable(appErrors.CodeAdminDisabled, "admin access is disabled").Build())
				return
			}

			given := presentedSecret(r)
			if subtle.ConstantTimeCompare([]byte(given), []byte(expected)) != 1 {
				logger.Warn("Rejected admin request",
					RequestIDField(r),
					zap.String("path", r.URL.Path),
					zap.Bool("credentials_present", given != ""))
				WriteError(w, appErrors.Unauthorized(appErrors.CodeBadCredentials, "invalid admin credentials").Build())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func presentedSecret(r *http.Request) string {
	if v := r.Header.Get(AdminPasswordHeader); v != "" {
		return v
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
