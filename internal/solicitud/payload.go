package solicitud

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"sertec/pkg/dates"
	dErrors "sertec/pkg/domain-errors"
	"sertec/pkg/domain/rut"
	"sertec/pkg/money"
	"sertec/pkg/requestcontext"
)

// Field messages shown next to the offending form input.
const (
	MsgRequired      = "es obligatorio"
	MsgInvalidRut    = "RUT inválido"
	MsgInvalidDate   = "fecha inválida"
	MsgFutureDate    = "no puede ser posterior a hoy"
	MsgInvalidAmount = "monto inválido"
	MsgNegative      = "no puede ser negativo"
	MsgTooLong       = "es demasiado largo"
)

const maxDescripcion = 2000

// Payload converts a UI form into the backend payload: the RUT in compact
// form, dates in API format and the amount as a decimal. Every invalid field
// is reported at once in a CodeInvalidInput error.
func (s *Service) Payload(ctx context.Context, form Form) (Payload, error) {
	_, span := s.tracer.Start(ctx, "solicitud.Payload")
	defer span.End()

	form.Normalize()
	now := requestcontext.Now(ctx)
	fields := map[string]string{}
	p := Payload{
		Estado:      form.Estado,
		Prioridad:   form.Prioridad,
		Tipo:        form.Tipo,
		Descripcion: form.Descripcion,
	}

	switch r, err := rut.Parse(form.Codaux); {
	case form.Codaux == "":
		fields[FieldCodaux] = MsgRequired
	case err != nil:
		fields[FieldCodaux] = MsgInvalidRut
		s.recordRut(false)
	default:
		p.Codaux = r.Compact()
		s.recordRut(true)
	}

	if form.FechaSolicitud == "" {
		fields[FieldFechaSolicitud] = MsgRequired
	} else if t, ok := s.parseFormDate(form.FechaSolicitud); !ok {
		fields[FieldFechaSolicitud] = MsgInvalidDate
	} else {
		p.FechaSolicitud = apiDate(t, s.formatter.Location())
	}

	// An invoice cannot be issued after the form is submitted.
	if form.FechaFact != "" {
		switch t, ok := s.parseFormDate(form.FechaFact); {
		case !ok:
			fields[FieldFechaFact] = MsgInvalidDate
		case t.After(now):
			fields[FieldFechaFact] = MsgFutureDate
		default:
			p.FechaFact = apiDate(t, s.formatter.Location())
		}
	}

	if form.Monto != "" {
		switch d, err := money.ParseCLP(form.Monto); {
		case err != nil:
			fields[FieldMonto] = MsgInvalidAmount
		case d.IsNegative():
			fields[FieldMonto] = MsgNegative
		default:
			p.Monto = &d
		}
	}

	if len([]rune(form.Descripcion)) > maxDescripcion {
		fields["descripcion"] = MsgTooLong
	}

	if len(fields) > 0 {
		span.SetAttributes(attribute.Int("solicitud.invalid_fields", len(fields)))
		span.SetStatus(codes.Error, "invalid form")
		return Payload{}, dErrors.WithFields(dErrors.CodeInvalidInput, "solicitud form has invalid fields", fields)
	}
	return p, nil
}

// parseFormDate accepts what users type: "1/6/2026" is padded by
// ToAPIFormat before the strict layouts are tried.
func (s *Service) parseFormDate(v string) (time.Time, bool) {
	return s.formatter.Parse(dates.ToAPIFormat(v))
}

// apiDate renders t in API format, keeping the time of day when present.
func apiDate(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	if h, m, sec := t.Clock(); h != 0 || m != 0 || sec != 0 {
		return t.Format(dates.TimestampLayout)
	}
	return dates.FormatAPI(t)
}

func (s *Service) recordRut(valid bool) {
	if s.metrics != nil {
		s.metrics.RecordRutValidation(valid)
	}
}
