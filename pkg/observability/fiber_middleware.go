package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/clinic_console/pkg/constants"
)

// FiberMiddleware continues the console's trace on the mock API. The span
// is named after the matched route once routing is done, so every
// /doctors/:id call lands under one name. Health probes are not traced.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)
	meter := otel.Meter(tracerName)

	requests, _ := meter.Int64Counter(
		"http_server_request_count",
		metric.WithDescription("Total number of mock API requests"),
		metric.WithUnit("{request}"),
	)
	duration, _ := meter.Float64Histogram(
		"http_server_request_duration_ms",
		metric.WithDescription("Mock API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return func(c fiber.Ctx) error {
		switch c.Path() {
		case healthcheck.LivenessEndpoint, healthcheck.ReadinessEndpoint, healthcheck.StartupEndpoint:
			return c.Next()
		}

		carrier := propagation.HeaderCarrier(c.GetReqHeaders())
		ctx := otel.GetTextMapPropagator().Extract(c.Context(), carrier)
		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.OriginalURL()),
				attribute.String("clinic.request_id", c.Get(constants.HeaderRequestID)),
			),
		)
		defer span.End()
		c.SetContext(ctx)

		start := time.Now()
		err := c.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		route := c.Route().Path
		span.SetName(c.Method() + " " + route)

		status := c.Response().StatusCode()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		requests.Add(ctx, 1, attrs)
		duration.Record(ctx, elapsed, attrs)

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case status >= 500:
			span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
