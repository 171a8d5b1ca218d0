// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tracing builds the OpenTelemetry tracer provider used by the HTTP
middleware.

The exporter is chosen by configuration:

  - "none": a no-op provider. Spans cost nothing and are never exported.
  - "stdout": an SDK provider batching spans as JSON lines to the given writer.

The provider is also registered globally so libraries using otel.Tracer share it.
*/
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/taibuivan/inkpost/internal/platform/config"
)

// ShutdownFunc flushes buffered spans and releases the exporter.
type ShutdownFunc func(ctx context.Context) error

// Options describes the service being traced and where spans go.
type Options struct {
	ServiceName    string
	ServiceVersion string
	Exporter       string
	Output         io.Writer
}

// Setup returns the tracer provider selected by options.Exporter and its shutdown hook.
func Setup(options Options) (trace.TracerProvider, ShutdownFunc, error) {
	switch options.Exporter {
	case "", config.TracingExporterNone:
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil

	case config.TracingExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(options.Output))
		if err != nil {
			return nil, nil, fmt.Errorf("tracing: failed to create stdout exporter: %w", err)
		}

		provider := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resource.NewSchemaless(
				semconv.ServiceName(options.ServiceName),
				semconv.ServiceVersion(options.ServiceVersion),
			)),
		)
		otel.SetTracerProvider(provider)

		return provider, provider.Shutdown, nil

	default:
		return nil, nil, fmt.Errorf("tracing: unknown exporter %q", options.Exporter)
	}
}
