package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"jrs-backend/pkg/utils"
)

// PanicRecovery converts a handler panic into a 500 so one bad request
// cannot take the server down with it.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
