package middleware

import (
	"log/slog"
	"net/http"

	"github.com/openclerk/backoffice/internal/auth"
)

// RequirePermission guards a route with a single Module:Action pair.
// The principal must already be in the context via the auth middleware.
func RequirePermission(module, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasPermission(module, action) {
				slog.Warn("access denied: user lacks required permission",
					"user_id", user.ID,
					"module", module,
					"action", action)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission grants access when the user holds at least one of
// the given "Module:Action" strings.
func RequireAnyPermission(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, required := range permissions {
				for _, held := range user.Permissions {
					if held == required {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			slog.Warn("access denied: user lacks required permissions",
				"user_id", user.ID,
				"required_permissions", permissions)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}
