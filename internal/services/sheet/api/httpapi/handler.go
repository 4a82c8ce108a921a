// Package httpapi serves the character-sheet helpers as a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
	"github.com/louisbranch/sheetkeeper/internal/platform/metrics"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/sheetkeeper/internal/services/sheet/api/httpapi"

// Options configures the API handler.
type Options struct {
	// Cards backs the catalog endpoints. Without it they answer 503.
	Cards catalog.Reader
	// Metrics records per-route request metrics and serves /metrics.
	Metrics *metrics.Recorder
}

// Handler routes sheet API requests.
type Handler struct {
	cards   catalog.Reader
	metrics *metrics.Recorder
	tracer  trace.Tracer
	mux     *http.ServeMux
}

// New builds the API handler with its middleware applied.
func New(opts Options) http.Handler {
	h := &Handler{
		cards:   opts.Cards,
		metrics: opts.Metrics,
		tracer:  otel.Tracer(tracerName),
		mux:     http.NewServeMux(),
	}
	h.routes()
	return Chain(h, RequestID(), RecoverPanic())
}

// ServeHTTP dispatches through the mux. Requests no route matches get the
// same JSON error body as endpoint failures.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern == "" {
		w = &routeErrorWriter{ResponseWriter: w, r: r}
	}
	h.mux.ServeHTTP(w, r)
}

// routeErrorWriter replaces the mux's plain-text 404 and 405 replies.
type routeErrorWriter struct {
	http.ResponseWriter
	r        *http.Request
	replaced bool
}

func (w *routeErrorWriter) WriteHeader(status int) {
	switch status {
	case http.StatusNotFound:
		w.replaced = true
		writeError(w.ResponseWriter, w.r, apperrors.New(apperrors.CodeNotFound, "route not found"))
	case http.StatusMethodNotAllowed:
		w.replaced = true
		writeError(w.ResponseWriter, w.r, apperrors.WithMetadata(apperrors.CodeMethodNotAllowed,
			"method not allowed", map[string]string{"Method": w.r.Method}))
	default:
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *routeErrorWriter) Write(b []byte) (int, error) {
	if w.replaced {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *routeErrorWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (h *Handler) routes() {
	h.handle("POST /v1/resources/snapshot", h.resourceSnapshot)
	h.handle("POST /v1/stress/mark", h.stressMark)
	h.handle("POST /v1/stress/set", h.stressSet)
	h.handle("POST /v1/thresholds/validate", h.thresholdsValidate)
	h.handle("POST /v1/thresholds/ds", h.thresholdsDS)
	h.handle("POST /v1/thresholds/resolve", h.thresholdsResolve)
	h.handle("POST /v1/damage/evaluate", h.damageEvaluate)
	h.handle("POST /v1/gold/total", h.goldTotal)
	h.handle("POST /v1/domain-cards/filter", h.domainCardsFilter)
	h.handle("GET /v1/domain-cards", h.domainCardsList)
	h.handle("POST /v1/loadout/move", h.loadoutMove)
	h.handle("POST /v1/loadout/recall", h.loadoutRecall)
	h.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics.Handler())
	}
}

// endpointFunc handles a request and returns the response payload or an
// error to be rendered by writeError.
type endpointFunc func(ctx context.Context, r *http.Request) (any, error)

func (h *Handler) handle(pattern string, fn endpointFunc) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), pattern,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.route", pattern)),
		)
		defer span.End()

		payload, err := fn(ctx, r)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	})
	if h.metrics != nil {
		handler = h.metrics.Wrap(pattern, handler)
	}
	h.mux.Handle(pattern, handler)
}
