package solicitud

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"sertec/internal/lookup"
	"sertec/internal/warranty"
	"sertec/pkg/dates"
	dErrors "sertec/pkg/domain-errors"
	"sertec/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	now     time.Time
	ctx     context.Context
	service *Service
	metrics *fakeMetrics
}

type fakeMetrics struct {
	valid, invalid int
}

func (f *fakeMetrics) RecordRutValidation(valid bool) {
	if valid {
		f.valid++
		return
	}
	f.invalid++
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.metrics = &fakeMetrics{}

	evaluator, err := warranty.New(warranty.DefaultCacheSize, warranty.WithLocation(time.UTC))
	s.Require().NoError(err)
	formatter, err := dates.NewFormatter(time.UTC, dates.DefaultCacheSize)
	s.Require().NoError(err)

	s.service = New(lookup.NewClassifier(lookup.DefaultTables()), evaluator, formatter,
		WithMetrics(s.metrics), WithWorkers(4))
}

func (s *ServiceSuite) TestView() {
	s.Run("well-formed record", func() {
		rec := Record{
			"codaux":          "12345678-5",
			"fecha_solicitud": "2026-06-01 09:30:00",
			"fecha_fact":      "2025-08-20",
			"estado":          "02",
			"prioridad":       "A",
			"tipo":            "I",
			"monto":           float64(1234567),
			"observaciones":   "cliente frecuente",
		}

		v := s.service.View(s.ctx, rec)

		s.Equal(Display{
			Rut:            "12.345.678-5",
			RutValid:       true,
			FechaSolicitud: "01-06-2026, 09:30:00",
			FechaFactura:   "20/08/2025",
			Garantia:       Warranty{Active: true, Expires: "20/08/2026"},
			Estado:         Badge{Label: "en proceso", Category: lookup.CategoryInProgress, Color: "info"},
			Prioridad:      Badge{Label: "alta", Category: lookup.CategoryHigh, Color: "error"},
			Tipo:           "instalacion",
			Monto:          "$1.234.567",
		}, v.Display)
		s.Equal("cliente frecuente", v.Record["observaciones"], "unknown fields pass through")
	})

	s.Run("malformed values render sentinels", func() {
		v := s.service.View(s.ctx, Record{
			"codaux":          "abc",
			"fecha_solicitud": "ayer",
			"fecha_fact":      "",
			"monto":           "mucho",
		})

		s.Equal("N/A", v.Display.Rut)
		s.False(v.Display.RutValid)
		s.Equal(dates.InvalidDate, v.Display.FechaSolicitud)
		s.Equal(dates.NotAvailable, v.Display.FechaFactura)
		s.Equal(Warranty{}, v.Display.Garantia)
		s.Equal(Badge{Label: "N/A", Category: lookup.CategoryDefault, Color: "default"}, v.Display.Estado)
		s.Equal("N/A", v.Display.Tipo)
		s.Equal("mucho", v.Display.Monto)
	})

	s.Run("nil record", func() {
		v := s.service.View(s.ctx, nil)
		s.NotNil(v.Record)
		s.Equal(dates.NotAvailable, v.Display.FechaSolicitud)
		s.Equal("N/A", v.Display.Monto)
	})

	s.Run("expired warranty keeps its expiry date", func() {
		v := s.service.View(s.ctx, Record{"fecha_fact": "10/01/2024"})
		s.Equal(Warranty{Active: false, Expires: "10/01/2025"}, v.Display.Garantia)
		s.Equal("10/01/2024", v.Display.FechaFactura)
	})

	s.Run("check digit is recomputed for display", func() {
		v := s.service.View(s.ctx, Record{"codaux": "12.345.678-9"})
		s.Equal("12.345.678-5", v.Display.Rut)
		s.False(v.Display.RutValid)
	})
}

func (s *ServiceSuite) TestViews() {
	s.Run("preserves order", func() {
		records := make([]Record, 50)
		for i := range records {
			records[i] = Record{"id": i, "fecha_fact": fmt.Sprintf("2026-01-%02d", i%28+1)}
		}

		views, err := s.service.Views(s.ctx, records)
		s.Require().NoError(err)
		s.Require().Len(views, 50)
		for i, v := range views {
			s.Equal(i, v.Record["id"])
			s.True(v.Display.Garantia.Active)
		}
	})

	s.Run("empty page", func() {
		views, err := s.service.Views(s.ctx, nil)
		s.Require().NoError(err)
		s.Empty(views)
	})

	s.Run("cancelled context", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.service.Views(ctx, []Record{{}, {}})
		s.ErrorIs(err, context.Canceled)
	})
}

func (s *ServiceSuite) TestPayload() {
	s.Run("valid form", func() {
		p, err := s.service.Payload(s.ctx, Form{
			Codaux:         "12.345.678-5",
			FechaSolicitud: "1/6/2026",
			FechaFact:      "20/08/2025",
			Estado:         "02",
			Prioridad:      " Alta ",
			Tipo:           "I",
			Monto:          "$1.234.567",
			Descripcion:    " cambio de pantalla ",
		})
		s.Require().NoError(err)

		s.Equal("12345678-5", p.Codaux)
		s.Equal("2026-06-01", p.FechaSolicitud)
		s.Equal("2025-08-20", p.FechaFact)
		s.Equal("02", p.Estado)
		s.Equal("Alta", p.Prioridad)
		s.Equal("cambio de pantalla", p.Descripcion)
		s.Require().NotNil(p.Monto)
		s.True(decimal.NewFromInt(1234567).Equal(*p.Monto))
		s.Equal(1, s.metrics.valid)
	})

	s.Run("timestamps keep their time of day", func() {
		p, err := s.service.Payload(s.ctx, Form{Codaux: "11.111.111-1", FechaSolicitud: "2026-06-01 08:15:00"})
		s.Require().NoError(err)
		s.Equal("2026-06-01 08:15:00", p.FechaSolicitud)
		s.Empty(p.FechaFact)
		s.Nil(p.Monto)
	})

	s.Run("reports every invalid field", func() {
		_, err := s.service.Payload(s.ctx, Form{
			Codaux:    "12.345.678-9",
			FechaFact: "01/01/2027",
			Monto:     "-5",
		})
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))

		de, ok := dErrors.As(err)
		s.Require().True(ok)
		s.Equal(map[string]string{
			FieldCodaux:         MsgInvalidRut,
			FieldFechaSolicitud: MsgRequired,
			FieldFechaFact:      MsgFutureDate,
			FieldMonto:          MsgNegative,
		}, de.Fields)
		s.Equal(1, s.metrics.invalid)
	})

	s.Run("doubled sign is not read as positive", func() {
		for _, monto := range []string{"--5000", "-$-5000"} {
			_, err := s.service.Payload(s.ctx, Form{Monto: monto})
			de, ok := dErrors.As(err)
			s.Require().True(ok, monto)
			s.Equal(MsgInvalidAmount, de.Fields[FieldMonto], monto)
		}
	})

	s.Run("missing rut and malformed values", func() {
		_, err := s.service.Payload(s.ctx, Form{FechaSolicitud: "31/02/2026", Monto: "abc"})
		de, ok := dErrors.As(err)
		s.Require().True(ok)
		s.Equal(MsgRequired, de.Fields[FieldCodaux])
		s.Equal(MsgInvalidDate, de.Fields[FieldFechaSolicitud])
		s.Equal(MsgInvalidAmount, de.Fields[FieldMonto])
	})
}

func (s *ServiceSuite) TestWorkerOptions() {
	svc := New(nil, nil, nil)
	s.Equal(DefaultWorkers, svc.workers)
	s.Equal(3, New(nil, nil, nil, WithWorkers(3)).workers)
	s.Equal(DefaultWorkers, New(nil, nil, nil, WithWorkers(0)).workers, "non-positive keeps the default")
}

func (s *ServiceSuite) TestRecordString() {
	rec := Record{"s": " x ", "f": float64(12345678), "n": nil, "b": true}
	s.Equal("x", rec.String("s"))
	s.Equal("12345678", rec.String("f"))
	s.Equal("", rec.String("n"))
	s.Equal("", rec.String("missing"))
	s.Equal("true", rec.String("b"))
}
