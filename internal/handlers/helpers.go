package handlers

import (
	"net/http"
	"strconv"

	"jrs-backend/internal/audit"
	"jrs-backend/internal/middleware"
)

// actorFromRequest builds the audit actor from the authenticated request
// context. Every user-originated mutation is stamped with this identity.
func actorFromRequest(r *http.Request) audit.Actor {
	id, _ := middleware.GetUserIDFromContext(r.Context())
	name, _ := middleware.GetNameFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())
	return audit.Actor{
		ID:   strconv.Itoa(id),
		Name: name,
		Role: role,
	}
}
