package otel

import (
	"context"

	"github.com/corray333/backend-labs/payreport/internal/jaeger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const serviceName = "payreport"

type OtelController struct {
	traceProvider *sdktrace.TracerProvider
}

// MustInitOtel installs a global tracer provider exporting to Jaeger.
func MustInitOtel(jaegerEndpoint string) *OtelController {
	jaegerExporter := jaeger.MustNewJaeger(jaegerEndpoint)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(jaegerExporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)

	otel.SetTracerProvider(tp)

	return &OtelController{
		traceProvider: tp,
	}
}

// Shutdown flushes pending spans. Safe on a nil controller.
func (o *OtelController) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}

	return o.traceProvider.Shutdown(ctx)
}
