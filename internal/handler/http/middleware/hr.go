package middleware

import (
	"net/http"

	"github.com/bayanihr/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// HROnly guards the workflow mutations (generate, approve, release, close,
// disburse, resolve). The role claim is set at token issuance.
func HROnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Missing or invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "hr" {
			response.Forbidden(w, "HR privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
