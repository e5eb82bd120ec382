package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sertec/internal/lookup"
	"sertec/internal/platform/metrics"
	"sertec/internal/solicitud"
	"sertec/internal/warranty"
	"sertec/pkg/dates"
	id "sertec/pkg/domain"
	dErrors "sertec/pkg/domain-errors"
	"sertec/pkg/domain/rut"
	"sertec/pkg/platform/httputil"
	"sertec/pkg/platform/middleware/version"
	"sertec/pkg/requestcontext"
)

// Service defines the solicitud operations the handler delegates to.
type Service interface {
	Views(ctx context.Context, records []solicitud.Record) ([]solicitud.View, error)
	Payload(ctx context.Context, form solicitud.Form) (solicitud.Payload, error)
}

// Handler is the thin HTTP layer over the normalization packages. It holds
// no business rules of its own.
type Handler struct {
	service    Service
	classifier *lookup.Classifier
	warranty   *warranty.Evaluator
	formatter  *dates.Formatter
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New constructs a Handler with its dependencies. A nil metrics disables
// reporting.
func New(
	service Service,
	classifier *lookup.Classifier,
	evaluator *warranty.Evaluator,
	formatter *dates.Formatter,
	logger *slog.Logger,
	metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:    service,
		classifier: classifier,
		warranty:   evaluator,
		formatter:  formatter,
		logger:     logger,
		metrics:    metrics,
	}
}

// Register mounts the v1 endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Use(version.ExtractVersion(id.APIVersionV1))
		r.Use(version.ValidateRequestedVersion(h.logger))
		r.Post("/rut/validate", h.handleRutValidate)
		r.Post("/rut/format", h.handleRutFormat)
		r.Get("/rut/{body}/check-digit", h.handleCheckDigit)
		r.Post("/dates/convert", h.handleDateConvert)
		r.Post("/dates/humanize", h.handleHumanize)
		r.Post("/warranty", h.handleWarranty)
		r.Post("/classify", h.handleClassify)
		r.Post("/solicitudes/view", h.handleViews)
		r.Post("/solicitudes/payload", h.handlePayload)
	})
}

func (h *Handler) handleRutValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RutRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resp := RutValidateResponse{
		Valid:     rut.IsValid(req.Rut),
		Formatted: rut.Format(req.Rut),
	}
	if cleaned := rut.Clean(req.Rut); len(cleaned) >= 2 {
		resp.ExpectedCheckDigit = string(rut.CheckDigit(cleaned[:len(cleaned)-1]))
	}
	if parsed, err := rut.Parse(req.Rut); err == nil {
		resp.Compact = parsed.Compact()
	}
	h.metrics.RecordRutValidation(resp.Valid)

	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRutFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RutRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RutFormatResponse{Formatted: rut.Format(req.Rut)})
}

func (h *Handler) handleCheckDigit(w http.ResponseWriter, r *http.Request) {
	body, err := checkDigitBody(chi.URLParam(r, "body"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	dv := string(rut.CheckDigit(body))
	httputil.WriteJSON(w, http.StatusOK, CheckDigitResponse{
		Body:       body,
		CheckDigit: dv,
		// The dash marks dv as supplied, so nine-digit bodies are not split.
		Formatted: rut.Format(body + "-" + dv),
	})
}

func (h *Handler) handleDateConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[DateConvertRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	out := dates.ToAPIFormat(req.Date)
	if req.To == TargetDisplay {
		out = dates.ToDisplayFormat(req.Date)
	}
	httputil.WriteJSON(w, http.StatusOK, DateResponse{Date: out})
}

func (h *Handler) handleHumanize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[HumanizeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	formatted := make([]string, len(req.Dates))
	for i, d := range req.Dates {
		formatted[i] = h.formatter.FormatForHumans(d)
	}
	httputil.WriteJSON(w, http.StatusOK, HumanizeResponse{Formatted: formatted})
}

func (h *Handler) handleWarranty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[WarrantyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	var resp WarrantyResponse
	if req.FechaFact != nil {
		resp.Active = h.warranty.IsActiveAt(*req.FechaFact, requestcontext.Now(ctx))
		if t, ok := h.warranty.Expiry(*req.FechaFact); ok {
			resp.Expires = dates.FormatDisplay(t)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ClassifyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	estado := h.classifier.EstadoName(req.Estado)
	prioridad := h.classifier.PrioridadName(req.Prioridad)
	httputil.WriteJSON(w, http.StatusOK, ClassifyResponse{
		Estado:    badge(estado, lookup.ClassifyEstadoByName(estado)),
		Prioridad: badge(prioridad, lookup.ClassifyPrioridad(prioridad)),
		Tipo:      label(h.classifier.Tipo(req.Tipo)),
	})
}

func (h *Handler) handleViews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ViewsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	views, err := h.service.Views(ctx, req.Records)
	if err != nil {
		h.logger.ErrorContext(ctx, "solicitud normalization failed",
			"request_id", requestID,
			"rows", len(req.Records),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeTimeout, "normalization did not complete"))
		return
	}

	h.logger.DebugContext(ctx, "solicitudes normalized",
		"request_id", requestID,
		"rows", len(views),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, ViewsResponse{Views: views})
}

func (h *Handler) handlePayload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	form, ok := httputil.DecodeAndPrepare[solicitud.Form](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	payload, err := h.service.Payload(ctx, *form)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInvalidInput) {
			h.logger.WarnContext(ctx, "solicitud form rejected",
				"request_id", requestID,
				"error", err,
			)
		} else {
			h.logger.ErrorContext(ctx, "solicitud payload failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PayloadResponse{Payload: payload})
}

func badge(name string, tag lookup.Tag) BadgeResponse {
	return BadgeResponse{Label: label(name), Tag: tag}
}

func label(s string) string {
	if s == "" {
		return lookup.DefaultLabel
	}
	return s
}
