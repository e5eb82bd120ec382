// Package solicitud normalizes service requests between the backend API and
// the admin UI. It is the single consumer of the rut, dates, warranty, lookup
// and money packages, so list pages and forms agree on every rule.
package solicitud

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sertec/internal/lookup"
	"sertec/internal/warranty"
	"sertec/pkg/dates"
	"sertec/pkg/domain/rut"
	"sertec/pkg/money"
	"sertec/pkg/requestcontext"
)

const tracerName = "sertec/internal/solicitud"

// Metrics receives validation outcomes. A nil Metrics disables reporting.
type Metrics interface {
	RecordRutValidation(valid bool)
}

// Service converts solicitudes between their backend and display forms.
type Service struct {
	classifier *lookup.Classifier
	warranty   *warranty.Evaluator
	formatter  *dates.Formatter
	metrics    Metrics
	tracer     trace.Tracer
	workers    int
}

// DefaultWorkers bounds Views concurrency unless WithWorkers overrides it.
const DefaultWorkers = 8

// Option configures a Service.
type Option func(*Service)

// WithMetrics reports RUT validation outcomes to m.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithWorkers bounds how many rows Views normalizes concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a Service. The warranty evaluator and formatter caches are
// shared by every request the Service handles.
func New(classifier *lookup.Classifier, evaluator *warranty.Evaluator, formatter *dates.Formatter, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		warranty:   evaluator,
		formatter:  formatter,
		tracer:     otel.Tracer(tracerName),
		workers:    DefaultWorkers,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// View normalizes one record. Malformed values never fail; they render as
// the sentinel strings of the package that owns them.
func (s *Service) View(ctx context.Context, rec Record) View {
	_, span := s.tracer.Start(ctx, "solicitud.View")
	defer span.End()
	return s.view(rec, requestcontext.Now(ctx))
}

// Views normalizes a page of records, preserving order. Every row is checked
// against the same "now". It fails only when ctx ends first.
func (s *Service) Views(ctx context.Context, records []Record) ([]View, error) {
	ctx, span := s.tracer.Start(ctx, "solicitud.Views",
		trace.WithAttributes(attribute.Int("solicitud.rows", len(records))))
	defer span.End()

	now := requestcontext.Now(ctx)
	views := make([]View, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			views[i] = s.view(rec, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "normalization aborted")
		return nil, err
	}
	return views, nil
}

func (s *Service) view(rec Record, now time.Time) View {
	if rec == nil {
		rec = Record{}
	}
	codaux := rec.String(FieldCodaux)
	fechaFact := rec.String(FieldFechaFact)
	estado := s.classifier.EstadoName(rec.String(FieldEstado))
	prioridad := s.classifier.PrioridadName(rec.String(FieldPrioridad))

	d := Display{
		Rut:            rut.Format(codaux),
		RutValid:       rut.IsValid(codaux),
		FechaSolicitud: s.formatter.FormatForHumans(rec.String(FieldFechaSolicitud)),
		FechaFactura:   displayDate(fechaFact),
		Garantia:       s.warrantyAt(fechaFact, now),
		Estado:         newBadge(estado, lookup.ClassifyEstadoByName(estado)),
		Prioridad:      newBadge(prioridad, lookup.ClassifyPrioridad(prioridad)),
		Tipo:           orDefault(s.classifier.Tipo(rec.String(FieldTipo))),
		Monto:          displayAmount(rec[FieldMonto]),
	}
	return View{Record: rec, Display: d}
}

func (s *Service) warrantyAt(fechaFact string, now time.Time) Warranty {
	w := Warranty{Active: s.warranty.IsActiveAt(fechaFact, now)}
	if t, ok := s.warranty.Expiry(fechaFact); ok {
		w.Expires = dates.FormatDisplay(t)
	}
	return w
}

func displayDate(s string) string {
	if s == "" {
		return dates.NotAvailable
	}
	return dates.ToDisplayFormat(s)
}

// displayAmount renders a monto field. JSON numbers are exact amounts;
// strings go through ParseCLP and are shown as typed when they do not parse.
func displayAmount(v any) string {
	switch n := v.(type) {
	case float64:
		return money.FormatCLP(decimal.NewFromFloat(n))
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return money.FormatCLP(d)
		}
		return n.String()
	case string:
		if strings.TrimSpace(n) == "" {
			return lookup.DefaultLabel
		}
		if d, err := money.ParseCLP(n); err == nil {
			return money.FormatCLP(d)
		}
		return n
	default:
		return lookup.DefaultLabel
	}
}

func orDefault(s string) string {
	if s == "" {
		return lookup.DefaultLabel
	}
	return s
}
