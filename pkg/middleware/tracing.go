package middleware

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Tracing starts a server span per request, joining an upstream trace when headers carry one
func Tracing() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		tracer := opentracing.GlobalTracer()

		header := http.Header{}
		c.Request.Header.VisitAll(func(k, v []byte) {
			header.Add(string(k), string(v))
		})
		parent, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(header))

		operation := c.FullPath()
		if operation == "" {
			operation = "not_found"
		}
		span := tracer.StartSpan(string(c.Method())+" "+operation, ext.RPCServerOption(parent))
		defer span.Finish()
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().PathOriginal()))

		c.Next(opentracing.ContextWithSpan(ctx, span))

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
	}
}
