package httptransport

import (
	"strings"

	"sertec/internal/lookup"
	"sertec/internal/solicitud"
	dErrors "sertec/pkg/domain-errors"
	"sertec/pkg/domain/rut"
)

const (
	maxRutLength  = 32
	maxDateLength = 64
	maxBatch      = 1000
)

// Date conversion targets.
const (
	TargetAPI     = "api"
	TargetDisplay = "display"
)

// RutRequest is the body of POST /v1/rut/validate and /v1/rut/format.
type RutRequest struct {
	Rut string `json:"rut"`
}

func (r *RutRequest) Normalize() {
	if r == nil {
		return
	}
	r.Rut = strings.TrimSpace(r.Rut)
}

// Follows validation order: Size -> Required.
func (r *RutRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Rut) > maxRutLength {
		return dErrors.New(dErrors.CodeValidation, "rut must be 32 characters or less")
	}
	if r.Rut == "" {
		return dErrors.New(dErrors.CodeValidation, "rut is required")
	}
	return nil
}

// RutValidateResponse reports validity together with the canonical form.
type RutValidateResponse struct {
	Valid              bool   `json:"valid"`
	Formatted          string `json:"formatted"`
	Compact            string `json:"compact,omitempty"`
	ExpectedCheckDigit string `json:"expected_check_digit,omitempty"`
}

type RutFormatResponse struct {
	Formatted string `json:"formatted"`
}

type CheckDigitResponse struct {
	Body       string `json:"body"`
	CheckDigit string `json:"check_digit"`
	Formatted  string `json:"formatted"`
}

// DateConvertRequest is the body of POST /v1/dates/convert.
type DateConvertRequest struct {
	Date string `json:"date"`
	To   string `json:"to"`
}

func (r *DateConvertRequest) Normalize() {
	if r == nil {
		return
	}
	r.Date = strings.TrimSpace(r.Date)
	r.To = strings.ToLower(strings.TrimSpace(r.To))
}

func (r *DateConvertRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Date) > maxDateLength {
		return dErrors.New(dErrors.CodeValidation, "date must be 64 characters or less")
	}
	if r.To != TargetAPI && r.To != TargetDisplay {
		return dErrors.New(dErrors.CodeValidation, "to must be 'api' or 'display'")
	}
	return nil
}

type DateResponse struct {
	Date string `json:"date"`
}

// HumanizeRequest is the body of POST /v1/dates/humanize.
type HumanizeRequest struct {
	Dates []string `json:"dates"`
}

func (r *HumanizeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Dates) > maxBatch {
		return dErrors.New(dErrors.CodeValidation, "dates must hold 1000 entries or less")
	}
	return nil
}

type HumanizeResponse struct {
	Formatted []string `json:"formatted"`
}

// WarrantyRequest is the body of POST /v1/warranty. A null or missing
// fecha_fact is never under warranty.
type WarrantyRequest struct {
	FechaFact *string `json:"fecha_fact"`
}

func (r *WarrantyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.FechaFact != nil && len(*r.FechaFact) > maxDateLength {
		return dErrors.New(dErrors.CodeValidation, "fecha_fact must be 64 characters or less")
	}
	return nil
}

type WarrantyResponse struct {
	Active  bool   `json:"active"`
	Expires string `json:"expires,omitempty"`
}

// ClassifyRequest is the body of POST /v1/classify. Each field may be a
// legacy code or a spelled-out value.
type ClassifyRequest struct {
	Estado    string `json:"estado"`
	Prioridad string `json:"prioridad"`
	Tipo      string `json:"tipo"`
}

type BadgeResponse struct {
	Label string `json:"label"`
	lookup.Tag
}

type ClassifyResponse struct {
	Estado    BadgeResponse `json:"estado"`
	Prioridad BadgeResponse `json:"prioridad"`
	Tipo      string        `json:"tipo"`
}

// ViewsRequest is the body of POST /v1/solicitudes/view.
type ViewsRequest struct {
	Records []solicitud.Record `json:"records"`
}

func (r *ViewsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Records) > maxBatch {
		return dErrors.New(dErrors.CodeValidation, "records must hold 1000 entries or less")
	}
	return nil
}

type ViewsResponse struct {
	Views []solicitud.View `json:"views"`
}

type PayloadResponse struct {
	Payload solicitud.Payload `json:"payload"`
}

// checkDigitBody validates the {body} path parameter of the check digit route.
func checkDigitBody(raw string) (string, error) {
	body := rut.Clean(strings.TrimSpace(raw))
	if body == "" || len(body) > 9 {
		return "", dErrors.New(dErrors.CodeValidation, "body must be 1 to 9 digits")
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return "", dErrors.New(dErrors.CodeValidation, "body must be 1 to 9 digits")
		}
	}
	return body, nil
}
