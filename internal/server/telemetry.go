package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	otelsetup "clue-calendar/backend/internal/telemetry/otel"
)

// Telemetry records a span, a request counter increment, and a log record
// for every request. Emission is best-effort and never fails the request.
type Telemetry struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	logger   otellog.Logger
}

// NewTelemetry returns request telemetry backed by the given providers.
func NewTelemetry(p *otelsetup.Providers) (*Telemetry, error) {
	const scope = "clue-calendar/backend/internal/server"
	requests, err := p.MeterProvider.Meter(scope).Int64Counter("http.server.requests")
	if err != nil {
		return nil, err
	}
	return &Telemetry{
		tracer:   p.TracerProvider.Tracer(scope),
		requests: requests,
		logger:   p.LoggerProvider.Logger(scope),
	}, nil
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware wraps next with per-request telemetry.
func (t *Telemetry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		ctx, span := t.tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
				attribute.String("request.id", requestID),
			),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
		t.requests.Add(ctx, 1, metric.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.Int("http.response.status_code", rec.status),
		))

		var record otellog.Record
		record.SetTimestamp(time.Now())
		record.SetSeverity(otellog.SeverityInfo)
		record.SetBody(otellog.StringValue("http_request"))
		record.AddAttributes(
			otellog.String("request.id", requestID),
			otellog.String("method", r.Method),
			otellog.String("path", r.URL.Path),
			otellog.Int("status", rec.status),
			otellog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		t.logger.Emit(ctx, record)
	})
}
