package lookup

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Span attribute keys, namespaced like the rest of our telemetry.
const (
	AttrQuery       = "usersearch.query"
	AttrResultCount = "usersearch.result.count"
)

type tracedLookuper struct {
	next   Lookuper
	tracer oteltrace.Tracer
}

// WithTracing wraps l so every call is recorded as a "lookup" span.
// A nil tracer returns l unchanged.
func WithTracing(l Lookuper, tracer oteltrace.Tracer) Lookuper {
	if tracer == nil {
		return l
	}
	return &tracedLookuper{next: l, tracer: tracer}
}

// Lookup implements Lookuper.
func (t *tracedLookuper) Lookup(ctx context.Context, query string) ([]Record, error) {
	ctx, span := t.tracer.Start(ctx, "lookup",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(attribute.String(AttrQuery, query)),
	)
	defer span.End()

	records, err := t.next.Lookup(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int(AttrResultCount, len(records)))
	return records, nil
}
