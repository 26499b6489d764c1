package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStartPropagatesParentAndRequest(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithRequestID(WithTracer(context.Background(), ring), "req-1")

	ctx, req := Start(ctx, ScopeRequest, "request")
	stageCtx, stage := Start(ctx, ScopeStage, "syntax")
	Point(stageCtx, ScopeHost, "read", "/a.ts")
	stage.End("diags=0")
	req.End("")

	events := ring.Snapshot()
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	for _, ev := range events {
		if ev.RequestID != "req-1" {
			t.Fatalf("event %s has request %q", ev.Name, ev.RequestID)
		}
	}
	if events[1].ParentID != req.ID() {
		t.Errorf("stage parent = %d, want %d", events[1].ParentID, req.ID())
	}
	if events[2].Kind != KindPoint || events[2].ParentID != stage.ID() {
		t.Errorf("point event = %+v", events[2])
	}
	if got := ring.Named("syntax"); len(got) != 2 || got[1].Detail != "diags=0" {
		t.Errorf("syntax events = %+v", got)
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	_, s := Start(ctx, ScopeStage, "emit")
	Point(ctx, ScopeHost, "write", "/a.js")
	s.End("")
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("got %d events, want 2 (host scope filtered)", n)
	}
}

func TestNopWithoutTracer(t *testing.T) {
	ctx, s := Start(context.Background(), ScopeRequest, "request")
	if s.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("expected inert span")
	}
	if d := s.End(""); d != 0 {
		t.Fatalf("duration = %v", d)
	}
}

func TestStreamFormats(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeStage, "semantic", 0, "abc").WithExtra("files", "2").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "end" || ev["request_id"] != "abc" || ev["detail"] != "ok" {
		t.Fatalf("event = %v", ev)
	}

	text := string(formatText(&Event{Kind: KindPoint, Scope: ScopeHost, Name: "read", Detail: "/a.ts", Extra: map[string]string{"b": "2", "a": "1"}}))
	if text != "• host:read (/a.ts) {a=1, b=2}\n" {
		t.Fatalf("text = %q", text)
	}
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Level
		err  bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"loud", LevelOff, true},
	} {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.err || got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("tracer = %v, %v", tr, err)
	}
}

func TestNewBothFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("tracer = %T, want *MultiTracer", tr)
	}
	ctx := WithRequestID(WithTracer(context.Background(), tr), "r2")
	_, s := Start(ctx, ScopeRequest, "request")
	s.End("")
	if got := len(multi.Ring().Request("r2")); got != 2 {
		t.Fatalf("ring events for r2 = %d, want 2", got)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream = %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRingWrapsOldestFirst(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&Event{Seq: uint64(i), Scope: ScopeHost, Name: name})
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Fatalf("snapshot = %v", names)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("RING"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode(""); err == nil {
		t.Fatal("empty mode accepted")
	}
	if ModeBoth.String() != "both" || StorageMode(9).String() != "unknown" {
		t.Fatal("mode names")
	}
}
