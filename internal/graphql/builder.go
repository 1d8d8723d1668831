package graphql

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/tosteiner/thoth/internal/graphql"

// Builder performs query round trips over a configured Transport. A Builder
// holds no per-call state and is safe for concurrent use.
type Builder struct {
	transport Transport
	logger    *slog.Logger
	tracer    trace.Tracer
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for per-call debug output.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTracer sets the tracer used to record one span per call. By default
// the global OpenTelemetry tracer provider is used.
func WithTracer(tracer trace.Tracer) BuilderOption {
	return func(b *Builder) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// NewBuilder returns a Builder sending requests through t.
func NewBuilder(t Transport, opts ...BuilderOption) *Builder {
	if t == nil {
		panic("graphql transport must not be nil")
	}
	b := &Builder{
		transport: t,
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute performs exactly one round trip for def with the given variables.
//
// On success it returns the decoded data. Otherwise it returns an *Error:
// KindEncode if vars could not be serialized, KindNetwork if the transport
// failed (the body is never decoded in that case), or the KindDecode /
// KindProtocol error produced by Decode. The returned data is the
// placeholder value unless the server sent partial data alongside errors.
func Execute[V any, D ResponseData[D]](ctx context.Context, b *Builder, def *Definition[V, D], vars V) (D, error) {
	ctx, span := b.tracer.Start(ctx, "graphql."+def.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", def.name),
			attribute.String("graphql.operation.type", def.opType),
		),
	)
	defer span.End()

	start := time.Now()

	body, err := Encode(def.query, vars)
	if err != nil {
		return finish(ctx, b, span, def.name, start, def.Placeholder(), newError(KindEncode, err, err.Error()))
	}

	resp, err := b.transport.RoundTrip(ctx, body)
	if err != nil {
		return finish(ctx, b, span, def.name, start, def.Placeholder(), newError(KindNetwork, err, err.Error()))
	}

	data, err := Decode[D](resp)
	if err != nil {
		return finish(ctx, b, span, def.name, start, data, err.(*Error))
	}
	return finish(ctx, b, span, def.name, start, data, nil)
}

// finish records the outcome of a call on its span and in the debug log.
func finish[D any](ctx context.Context, b *Builder, span trace.Span, name string, start time.Time, data D, err *Error) (D, error) {
	elapsed := time.Since(start)
	if err == nil {
		span.SetAttributes(attribute.Int("graphql.error_count", 0))
		b.logger.DebugContext(ctx, "graphql query completed",
			"query", name,
			"duration_ms", elapsed.Milliseconds(),
		)
		return data, nil
	}

	span.SetAttributes(
		attribute.Int("graphql.error_count", len(err.Details)),
		attribute.String("graphql.error_kind", err.Kind.String()),
	)
	span.SetStatus(codes.Error, err.Error())
	b.logger.DebugContext(ctx, "graphql query failed",
		"query", name,
		"kind", err.Kind.String(),
		"partial", err.Partial,
		"duration_ms", elapsed.Milliseconds(),
		"error", err,
	)
	return data, err
}
