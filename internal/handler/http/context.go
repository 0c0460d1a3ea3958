package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// actorID pulls the authenticated user's id out of the verified token.
// AuthRequired has already run, so an empty result means a malformed token.
func actorID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
