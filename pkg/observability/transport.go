package observability

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type transport struct {
	base     http.RoundTripper
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// Transport wraps base so every outgoing API call gets a client span, a
// propagated trace context, and request count/duration metrics. A nil base
// means http.DefaultTransport.
func Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	meter := otel.Meter(tracerName)

	requests, _ := meter.Int64Counter(
		"http_client_request_count",
		metric.WithDescription("Total number of API requests"),
		metric.WithUnit("{request}"),
	)
	duration, _ := meter.Float64Histogram(
		"http_client_request_duration_ms",
		metric.WithDescription("API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return &transport{
		base:     base,
		tracer:   otel.Tracer(tracerName),
		requests: requests,
		duration: duration,
	}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("net.peer.name", req.URL.Hostname()),
		),
	)
	defer span.End()

	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	res, err := t.base.RoundTrip(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	status := 0
	if res != nil {
		status = res.StatusCode
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", req.Method),
		attribute.Int("http.status_code", status),
	)
	t.requests.Add(ctx, 1, attrs)
	t.duration.Record(ctx, elapsed, attrs)

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case status >= 400:
		span.SetAttributes(attribute.Int("http.status_code", status))
		span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
	default:
		span.SetAttributes(attribute.Int("http.status_code", status))
		span.SetStatus(codes.Ok, "")
	}

	return res, err
}
