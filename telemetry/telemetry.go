package telemetry

import (
	"context"
	"fmt"
	"time"

	"skill-exchange/config"
	"skill-exchange/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ShutdownFunc flushes and stops the providers installed by Init.
type ShutdownFunc func(context.Context) error

// Enabled reports whether any OTLP endpoint is configured.
func Enabled(cfg config.TelemetryConfig) bool {
	return cfg.OTLPEndpoint != "" || cfg.OTLPTracesEndpoint != "" || cfg.OTLPMetricsEndpoint != ""
}

// Init installs the global propagator and, when an OTLP endpoint is set,
// tracer and meter providers exporting over grpc or http/protobuf.
func Init(ctx context.Context, cfg config.Config) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger := logging.FromContext(ctx)
	if !Enabled(cfg.Telemetry) {
		logger.Info("OpenTelemetry disabled: OTEL_EXPORTER_OTLP_ENDPOINT is empty")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.Telemetry.ServiceName),
			semconv.ServiceVersion(cfg.Telemetry.ServiceVersion),
			attribute.String("deployment.environment", cfg.AppEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	traceExporter, metricExporter, err := newExporters(ctx, cfg.Telemetry)
	if err != nil {
		return nil, err
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	)
	metricProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(
			metricExporter,
			metric.WithInterval(cfg.Telemetry.MetricExportInterval),
		)),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetMeterProvider(metricProvider)
	logger.Info("OpenTelemetry enabled",
		zap.String("protocol", cfg.Telemetry.OTLPProtocol),
		zap.String("service", cfg.Telemetry.ServiceName),
	)

	return func(shutdownCtx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(shutdownCtx, 5*time.Second)
		defer cancel()

		return multierr.Append(
			traceProvider.Shutdown(shutdownCtx),
			metricProvider.Shutdown(shutdownCtx),
		)
	}, nil
}

func endpoints(cfg config.TelemetryConfig) (traces, metrics string) {
	traces, metrics = cfg.OTLPEndpoint, cfg.OTLPEndpoint
	if cfg.OTLPTracesEndpoint != "" {
		traces = cfg.OTLPTracesEndpoint
	}
	if cfg.OTLPMetricsEndpoint != "" {
		metrics = cfg.OTLPMetricsEndpoint
	}
	return traces, metrics
}

func newExporters(ctx context.Context, cfg config.TelemetryConfig) (trace.SpanExporter, metric.Exporter, error) {
	traceEndpoint, metricEndpoint := endpoints(cfg)

	switch cfg.OTLPProtocol {
	case "http/protobuf", "http":
		traceOptions := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(traceEndpoint),
			otlptracehttp.WithHeaders(cfg.OTLPHeaders),
			otlptracehttp.WithTimeout(cfg.ExportTimeout),
		}
		metricOptions := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(metricEndpoint),
			otlpmetrichttp.WithHeaders(cfg.OTLPHeaders),
			otlpmetrichttp.WithTimeout(cfg.ExportTimeout),
		}
		if cfg.OTLPInsecure {
			traceOptions = append(traceOptions, otlptracehttp.WithInsecure())
			metricOptions = append(metricOptions, otlpmetrichttp.WithInsecure())
		}

		traceExporter, err := otlptracehttp.New(ctx, traceOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create trace exporter: %w", err)
		}
		metricExporter, err := otlpmetrichttp.New(ctx, metricOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create metric exporter: %w", err)
		}
		return traceExporter, metricExporter, nil
	default:
		traceOptions := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(traceEndpoint),
			otlptracegrpc.WithHeaders(cfg.OTLPHeaders),
			otlptracegrpc.WithTimeout(cfg.ExportTimeout),
		}
		metricOptions := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(metricEndpoint),
			otlpmetricgrpc.WithHeaders(cfg.OTLPHeaders),
			otlpmetricgrpc.WithTimeout(cfg.ExportTimeout),
		}
		if cfg.OTLPInsecure {
			traceOptions = append(traceOptions, otlptracegrpc.WithInsecure())
			metricOptions = append(metricOptions, otlpmetricgrpc.WithInsecure())
		}

		traceExporter, err := otlptracegrpc.New(ctx, traceOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create trace exporter: %w", err)
		}
		metricExporter, err := otlpmetricgrpc.New(ctx, metricOptions...)
		if err != nil {
			return nil, nil, fmt.Errorf("create metric exporter: %w", err)
		}
		return traceExporter, metricExporter, nil
	}
}
