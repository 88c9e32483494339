package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RevocationChecker reports tokens invalidated by logout.
type RevocationChecker interface {
	IsTokenRevoked(token string) bool
}

func AuthRequired(ja *jwtauth.JWTAuth, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revoked != nil && revoked.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
