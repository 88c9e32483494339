package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
)

// RequirePermission checks if any of the caller's roles grants permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.AnyHasPermission(claims.Roles, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user roles are %v", permission, claims.Roles))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
