package version

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "sertec/pkg/domain"
	"sertec/pkg/requestcontext"
)

func TestExtractAndValidate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var seen id.APIVersion
	h := ExtractVersion(id.APIVersionV1)(ValidateRequestedVersion(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.APIVersion(r.Context())
		})))

	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusOK},
		{"v1", http.StatusOK},
		{"V1", http.StatusOK},
		{"v2", http.StatusBadRequest},
		{"latest", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/v1/rut/format", nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "v1", rec.Header().Get(Header))
			if tt.want == http.StatusOK {
				assert.Equal(t, id.APIVersionV1, seen)
			}
		})
	}
}
