// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/inkpost/internal/platform/ctxutil"
)

// Trace opens a server span around each request.
//
// The span is renamed to the matched chi route pattern once routing is done,
// so "/api/blogs/blog/42" and "/api/blogs/blog/7" share one span name.
func Trace(tracer trace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx, span := tracer.Start(request.Context(), request.Method+" "+request.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			attrs := []attribute.KeyValue{
				attribute.String("http.method", request.Method),
				attribute.String("http.target", request.URL.Path),
				attribute.String("http.request_id", ctxutil.GetRequestID(ctx)),
			}
			if request.Host != "" {
				attrs = append(attrs, attribute.String("http.host", request.Host))
			}
			if agent := request.UserAgent(); agent != "" {
				attrs = append(attrs, attribute.String("http.user_agent", agent))
			}
			span.SetAttributes(attrs...)

			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request.WithContext(ctx))

			// The route pattern is only known once chi has matched the request.
			if routeCtx := chi.RouteContext(ctx); routeCtx != nil {
				if pattern := routeCtx.RoutePattern(); pattern != "" {
					span.SetName(request.Method + " " + pattern)
					span.SetAttributes(attribute.String("http.route", pattern))
				}
			}

			span.SetAttributes(attribute.Int("http.status_code", recorder.status))
			if recorder.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(recorder.status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}
