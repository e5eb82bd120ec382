package solicitud

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sertec/internal/lookup"
)

// Backend field names. They are opaque keys: records pass through with every
// field intact, these are only the ones read for display.
const (
	FieldCodaux         = "codaux"
	FieldFechaSolicitud = "fecha_solicitud"
	FieldFechaFact      = "fecha_fact"
	FieldEstado         = "estado"
	FieldPrioridad      = "prioridad"
	FieldTipo           = "tipo"
	FieldMonto          = "monto"
)

// Record is a solicitud as returned by the backend API.
type Record map[string]any

// String returns field as text. Numbers are rendered without exponent and
// missing or null fields are empty.
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Badge is a classified value ready for a colored table cell.
type Badge struct {
	Label    string          `json:"label"`
	Category lookup.Category `json:"category"`
	Color    string          `json:"color"`
}

func newBadge(label string, tag lookup.Tag) Badge {
	if label == "" {
		label = lookup.DefaultLabel
	}
	return Badge{Label: label, Category: tag.Category, Color: tag.Color}
}

// Warranty is the warranty state of a solicitud at request time.
type Warranty struct {
	Active  bool   `json:"active"`
	Expires string `json:"expires,omitempty"`
}

// Display holds the normalized, human-facing form of a Record.
type Display struct {
	Rut            string   `json:"rut"`
	RutValid       bool     `json:"rut_valid"`
	FechaSolicitud string   `json:"fecha_solicitud"`
	FechaFactura   string   `json:"fecha_factura"`
	Garantia       Warranty `json:"garantia"`
	Estado         Badge    `json:"estado"`
	Prioridad      Badge    `json:"prioridad"`
	Tipo           string   `json:"tipo"`
	Monto          string   `json:"monto"`
}

// View pairs the untouched backend record with its display form.
type View struct {
	Record  Record  `json:"record"`
	Display Display `json:"display"`
}

// Form is the solicitud form as typed in the UI: display dates, dotted RUT,
// grouped amounts.
type Form struct {
	Codaux         string `json:"codaux"`
	FechaSolicitud string `json:"fecha_solicitud"`
	FechaFact      string `json:"fecha_fact"`
	Estado         string `json:"estado"`
	Prioridad      string `json:"prioridad"`
	Tipo           string `json:"tipo"`
	Monto          string `json:"monto"`
	Descripcion    string `json:"descripcion"`
}

// Normalize trims every field.
func (f *Form) Normalize() {
	if f == nil {
		return
	}
	f.Codaux = strings.TrimSpace(f.Codaux)
	f.FechaSolicitud = strings.TrimSpace(f.FechaSolicitud)
	f.FechaFact = strings.TrimSpace(f.FechaFact)
	f.Estado = strings.TrimSpace(f.Estado)
	f.Prioridad = strings.TrimSpace(f.Prioridad)
	f.Tipo = strings.TrimSpace(f.Tipo)
	f.Monto = strings.TrimSpace(f.Monto)
	f.Descripcion = strings.TrimSpace(f.Descripcion)
}

// Payload is the backend representation of a Form.
type Payload struct {
	Codaux         string           `json:"codaux"`
	FechaSolicitud string           `json:"fecha_solicitud"`
	FechaFact      string           `json:"fecha_fact,omitempty"`
	Estado         string           `json:"estado,omitempty"`
	Prioridad      string           `json:"prioridad,omitempty"`
	Tipo           string           `json:"tipo,omitempty"`
	Monto          *decimal.Decimal `json:"monto,omitempty"`
	Descripcion    string           `json:"descripcion,omitempty"`
}
