// internal/web/auth.go
//
// Owner identity extraction for the /api surface.
//
// Authentication lives in the fronting auth proxy; by the time a request
// reaches this service the proxy has already verified the session and
// injected the owner's numeric ID as X-User-ID.  This middleware only
// parses that header and makes it available to handlers—requests without
// it are rejected before any store call runs.
package web

import (
	"context"
	"net/http"
	"strconv"
)

type userIDKey struct{}

// requireUser rejects requests lacking a parseable X-User-ID header and
// stores the ID in the request context otherwise.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			respondJSON(w, http.StatusUnauthorized, envelope{
				Success: false,
				Message: "Unauthorized.",
			})
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID returns the owner ID stored by requireUser.  Zero means the
// middleware has not run, which is a routing bug, not a user error.
func userID(r *http.Request) uint64 {
	id, _ := r.Context().Value(userIDKey{}).(uint64)
	return id
}
