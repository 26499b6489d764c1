package trace

import "context"

// frame is what a context carries for tracing: where events go, which
// span encloses the caller and which request the work belongs to.
type frame struct {
	tracer  Tracer
	span    uint64
	request string
}

type frameKey struct{}

func frameOf(ctx context.Context) frame {
	if ctx == nil {
		return frame{}
	}
	f, _ := ctx.Value(frameKey{}).(frame)
	return f
}

func withFrame(ctx context.Context, f frame) context.Context {
	return context.WithValue(ctx, frameKey{}, f)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t := frameOf(ctx).tracer; t != nil {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	f := frameOf(ctx)
	f.tracer = t
	if t == nil {
		f.tracer = Nop
	}
	return withFrame(ctx, f)
}

// SpanContext identifies the span enclosing a context.
type SpanContext struct {
	SpanID uint64
}

// CurrentSpan reports the innermost span started on ctx. The zero value
// means no span is open.
func CurrentSpan(ctx context.Context) SpanContext {
	return SpanContext{SpanID: frameOf(ctx).span}
}

// WithSpanContext makes sc the parent of spans started from the result.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	f := frameOf(ctx)
	f.span = sc.SpanID
	return withFrame(ctx, f)
}

// WithRequestID tags every event started from ctx with id.
func WithRequestID(ctx context.Context, id string) context.Context {
	f := frameOf(ctx)
	f.request = id
	return withFrame(ctx, f)
}

// RequestID returns the request ID stored in ctx or "".
func RequestID(ctx context.Context) string {
	return frameOf(ctx).request
}
