package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID. IDs start at 1; 0 means "no span".
func NextSpanID() uint64 { return spanCounter.Add(1) }

func admits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open interval of work. The zero-ID span is inert: ending it
// or attaching extras does nothing.
type Span struct {
	tracer  Tracer
	base    Event
	started time.Time
	extra   map[string]string
}

// Begin opens a span on t under parent and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64, requestID string) *Span {
	if !admits(t, scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer: t,
		base: Event{
			Scope:     scope,
			SpanID:    NextSpanID(),
			ParentID:  parent,
			RequestID: requestID,
			Name:      name,
		},
		started: time.Now(),
	}
	t.Emit(s.stamp(KindSpanBegin, s.started, ""))
	return s
}

// Start opens a span using the tracer, parent span and request ID in ctx.
// The returned context parents later spans under the new one.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	f := frameOf(ctx)
	s := Begin(f.tracer, scope, name, f.span, f.request)
	if s.ID() == 0 {
		return ctx, s
	}
	f.span = s.ID()
	return withFrame(ctx, f), s
}

// Point emits an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	f := frameOf(ctx)
	if !admits(f.tracer, scope) {
		return
	}
	f.tracer.Emit(&Event{
		Time:      time.Now(),
		Seq:       NextSeq(),
		Kind:      KindPoint,
		Scope:     scope,
		SpanID:    NextSpanID(),
		ParentID:  f.span,
		RequestID: f.request,
		Name:      name,
		Detail:    detail,
	})
}

func (s *Span) stamp(kind Kind, at time.Time, detail string) *Event {
	ev := s.base
	ev.Time = at
	ev.Seq = NextSeq()
	ev.Kind = kind
	ev.Detail = detail
	return &ev
}

func (s *Span) live() bool {
	return s != nil && s.base.SpanID != 0
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.stamp(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// WithExtra records key=value on the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.base.SpanID
}
