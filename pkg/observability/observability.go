package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/milan604/api-handler/pkg/config"
	"github.com/milan604/api-handler/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// ObservabilityIface defines the interface for observability operations
type ObservabilityIface interface {
	// Tracer returns the tracer request executors should use.
	Tracer() trace.Tracer

	// Shutdown flushes pending spans.
	Shutdown(ctx context.Context) error
}

// Observability owns the OpenTelemetry tracer provider.
type Observability struct {
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	log            logger.LogManager
}

// New builds a tracer provider exporting over OTLP HTTP to the
// "otlp-endpoint" config key and installs it globally.
func New(log logger.LogManager, cfg *config.Config) (ObservabilityIface, error) {
	serviceName := cfg.GetStringD("service-name", "apicall")
	serviceVersion := cfg.GetStringD("service-version", "dev")
	endpoint := cfg.GetStringD("otlp-endpoint", "http://localhost:4318")

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	return newWithExporter(log, exporter, res, serviceName, serviceVersion), nil
}

func newWithExporter(log logger.LogManager, exporter sdktrace.SpanExporter, res *resource.Resource, serviceName, serviceVersion string) *Observability {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.InfoF("tracing initialized: service=%s, version=%s", serviceName, serviceVersion)

	return &Observability{
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName, trace.WithInstrumentationVersion(serviceVersion)),
		log:            log,
	}
}

// Tracer returns the tracer instance
func (o *Observability) Tracer() trace.Tracer {
	return o.tracer
}

// Shutdown gracefully shuts down the tracer provider
func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		o.log.ErrorF("failed to shutdown tracer provider: %v", err)
		return err
	}
	return nil
}
