// Package httputil holds the JSON response and request helpers shared by handlers.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "sertec/pkg/domain-errors"
)

// maxBodyBytes bounds request bodies; a table page of records fits well within it.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v as a JSON response with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err to the JSON error envelope. Errors without a
// domain code are reported as internal, and internal errors never expose
// their message.
func WriteError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: string(dErrors.CodeInternal)}
	status := http.StatusInternalServerError
	if de, ok := dErrors.As(err); ok {
		status = dErrors.ToHTTPStatus(de.Code)
		resp.Error = string(de.Code)
		if de.Code != dErrors.CodeInternal {
			resp.ErrorDescription = de.Message
			resp.Fields = de.Fields
		}
	}
	WriteJSON(w, status, resp)
}

// Validatable is implemented by request bodies that check themselves after decoding.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request bodies that trim or canonicalize
// their fields before validation.
type Normalizable interface {
	Normalize()
}

// DecodeAndPrepare decodes the JSON body into a T, then normalizes and
// validates it when T supports it. On failure the error response has been
// written and ok is false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := new(T)
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(req); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		logger.WarnContext(ctx, "failed to decode request",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, msg))
		return nil, false
	}

	if n, ok := any(req).(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.WarnContext(ctx, "invalid request",
				"request_id", requestID,
				"error", err,
			)
			WriteError(w, err)
			return nil, false
		}
	}
	return req, true
}
