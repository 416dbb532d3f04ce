package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token. Tokens issued by the
// identity service may omit the type claim; stream tokens are never accepted here.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			if tokenType, ok := claims["type"]; ok && tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			if _, err := jwt.ClassCodeFromContext(r.Context()); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
