package otel

import (
	"context"
	stderrors "errors"

	runtimeotel "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/pkg/errors"

	"github.com/imtaco/interview-lobby/internal/log"
)

// ShutdownFunc flushes and stops the installed providers.
type ShutdownFunc func(context.Context) error

// Init installs the global tracer and meter providers. Disabled signals get
// an SDK provider with no exporter so instruments created in init() stay valid.
func Init(ctx context.Context, cfg *Config, logger *log.Logger) (ShutdownFunc, error) {
	if logger == nil {
		panic("logger is required")
	}
	logger.Info("otel configuration",
		log.Bool("tracing_enabled", cfg.TracingEnabled),
		log.Bool("metrics_enabled", cfg.MetricsEnabled),
		log.Bool("go_metrics_enabled", cfg.RuntimeMetricsEnabled),
		log.String("endpoint", cfg.Endpoint),
		log.String("service_name", cfg.ServiceName))

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
		resource.WithFromEnv(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create resource")
	}

	tp := sdktrace.NewTracerProvider()
	if cfg.TracingEnabled {
		if tp, err = initTracing(ctx, cfg, res); err != nil {
			return nil, errors.Wrap(err, "init tracing")
		}
	}

	mp := sdkmetric.NewMeterProvider()
	if cfg.MetricsEnabled {
		if mp, err = initMetrics(ctx, cfg, res); err != nil {
			return nil, errors.Wrap(err, "init metrics")
		}
		if cfg.RuntimeMetricsEnabled {
			if err := runtimeotel.Start(runtimeotel.WithMeterProvider(mp)); err != nil {
				return nil, errors.Wrap(err, "start runtime metrics")
			}
		}
	}

	return func(ctx context.Context) error {
		return stderrors.Join(
			errors.Wrap(tp.Shutdown(ctx), "shutdown tracer provider"),
			errors.Wrap(mp.Shutdown(ctx), "shutdown meter provider"),
		)
	}, nil
}

func initTracing(ctx context.Context, cfg *Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts,
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create trace exporter")
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SamplingRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SamplingRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRate)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return provider, nil
}

func initMetrics(ctx context.Context, cfg *Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts,
			otlpmetricgrpc.WithTLSCredentials(insecure.NewCredentials()),
			otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create metric exporter")
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(cfg.MetricsExportInterval),
		)),
	)
	// instruments created from the global meter before this point delegate to it
	otel.SetMeterProvider(provider)
	return provider, nil
}
