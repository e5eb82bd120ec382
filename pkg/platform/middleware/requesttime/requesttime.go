// Package requesttime captures one "now" per HTTP request so every date
// comparison made while serving it agrees, e.g. warranty checks across a
// page of solicitudes.
package requesttime

import (
	"net/http"
	"time"

	"sertec/pkg/requestcontext"
)

// Middleware stores the request start time in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
