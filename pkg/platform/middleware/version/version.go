// Package version provides middleware for API version extraction and validation.
package version

import (
	"log/slog"
	"net/http"

	id "sertec/pkg/domain"
	dErrors "sertec/pkg/domain-errors"
	"sertec/pkg/platform/httputil"
	"sertec/pkg/requestcontext"
)

// Header lets clients pin the API version they were built against.
const Header = "X-API-Version"

// ExtractVersion records the version of the chi subrouter in the context and
// echoes it on the response.
//
// Usage:
//
//	r.Route("/v1", func(v1 chi.Router) {
//	    v1.Use(version.ExtractVersion(id.APIVersionV1))
//	    // ... routes
//	})
func ExtractVersion(version id.APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(Header, version.String())
			ctx := requestcontext.WithAPIVersion(r.Context(), version)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateRequestedVersion rejects requests whose X-API-Version is unknown or
// newer than the route version. Requests without the header are accepted.
// It must run after ExtractVersion.
func ValidateRequestedVersion(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(Header)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			routeVersion := requestcontext.APIVersion(ctx)
			requested, err := id.ParseAPIVersion(raw)
			if err != nil || !routeVersion.IsAtLeast(requested) {
				logger.WarnContext(ctx, "unsupported api version requested",
					"requested_version", raw,
					"route_version", routeVersion.String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "API version not supported by this endpoint"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
