package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hostbridge/internal/bridge"
	"hostbridge/internal/driver"
	"hostbridge/internal/result"
	"hostbridge/internal/ui"
)

func demoManifest(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.src"), "print(1+1)\n")
	writeFile(t, filepath.Join(root, "src", "bad.src"), "let x: number = \"s\";\n")
	path := filepath.Join(root, "hostbridge.toml")
	writeFile(t, path, `root = "src"

[[requests]]
inputPath = "a.src"
[requests.options]
transpileOnly = true

[[requests]]
inputPath = "bad.src"
`)
	return path
}

func TestCompileManifestsKeepsOrder(t *testing.T) {
	m, err := loadManifest(demoManifest(t))
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	runs, err := compileManifests(context.Background(), []*manifest{m, m}, bridge.Options{Format: result.FormatJSON}, nil)
	if err != nil {
		t.Fatalf("compileManifests: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d", len(runs))
	}
	for _, run := range runs {
		if len(run.outcomes) != 2 {
			t.Fatalf("outcomes = %d", len(run.outcomes))
		}
		if !run.outcomes[0].Result.Succeeded() {
			t.Fatalf("a.src failed: %+v", run.outcomes[0].Result.Errors)
		}
		if run.outcomes[1].Result.Succeeded() {
			t.Fatal("bad.src should fail")
		}
	}
}

func TestCompileManifestsMissingRoot(t *testing.T) {
	m := &manifest{
		Root:     "does-not-exist",
		Requests: []bridge.Request{{InputPath: "a.src"}},
		path:     filepath.Join(t.TempDir(), "m.toml"),
	}
	if _, err := compileManifests(context.Background(), []*manifest{m}, bridge.Options{}, nil); err == nil {
		t.Fatal("expected snapshot error")
	}
}

func TestCompileCommandJSON(t *testing.T) {
	path := demoManifest(t)
	emitDir := t.TempDir()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--color", "off", "--format", "json", "compile", "--emit-dir", emitDir, path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if !errors.Is(err, errCompileFailed) {
		t.Fatalf("err = %v, want errCompileFailed", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want one payload per request, got %q", out.String())
	}
	ok, err := result.Decode(lines[0], result.FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(ok.Code(), "print(1 + 1);") {
		t.Fatalf("code = %q", ok.Code())
	}
	if !strings.Contains(lines[1], `"errors"`) {
		t.Fatalf("second payload = %q", lines[1])
	}
	if _, err := os.Stat(filepath.Join(emitDir, "a.js")); err != nil {
		t.Fatalf("emitted file missing: %v", err)
	}
}

func TestRenderOutcomePretty(t *testing.T) {
	m, err := loadManifest(demoManifest(t))
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	runs, err := compileManifests(context.Background(), []*manifest{m}, bridge.Options{}, nil)
	if err != nil {
		t.Fatalf("compileManifests: %v", err)
	}
	run := runs[0]
	opts := renderOptions{format: outputPretty, showCode: true}

	var out, errOut bytes.Buffer
	if err := renderOutcome(&out, &errOut, run.outcomes[0], "a.src", providerLookup(run.provider), opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "ok a.src (") || !strings.Contains(out.String(), "print(1 + 1);") {
		t.Fatalf("pretty success = %q", out.String())
	}

	out.Reset()
	if err := renderOutcome(&out, &errOut, run.outcomes[1], "bad.src", providerLookup(run.provider), opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "bad.src:1:5 - error:") {
		t.Fatalf("missing header: %q", text)
	}
	if !strings.Contains(text, `let x: number = "s";`) {
		t.Fatalf("missing excerpt: %q", text)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--color", "off", "version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "hostbridge ") {
		t.Fatalf("version output = %q", out.String())
	}
}

func TestProgressDisabled(t *testing.T) {
	var p *progressUI
	if p.observer(&manifest{}) != nil {
		t.Fatal("nil progress must not observe")
	}
	if err := p.finish(nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
}

func TestProgressObserverForwardsStarts(t *testing.T) {
	p := &progressUI{events: make(chan ui.Event, 4)}
	m := &manifest{path: "/work/app.toml"}
	obs := p.observer(m)
	obs("a.ts", driver.PhaseEvent{Stage: driver.StageSyntax, Status: driver.PhaseStart})
	obs("a.ts", driver.PhaseEvent{Stage: driver.StageSyntax, Status: driver.PhaseEnd})

	if len(p.events) != 1 {
		t.Fatalf("events = %d, want only the start", len(p.events))
	}
	ev := <-p.events
	if ev.Item != "app.toml:a.ts" || ev.Stage != driver.StageSyntax || ev.Status != ui.StatusWorking {
		t.Fatalf("event = %+v", ev)
	}
}

func TestProgressSendsStopAfterViewExit(t *testing.T) {
	p := &progressUI{events: make(chan ui.Event), done: make(chan error, 1), exited: make(chan struct{})}
	close(p.exited)
	p.done <- nil

	m := &manifest{path: "/work/app.toml", Requests: []bridge.Request{{InputPath: "a.ts"}}}
	finished := make(chan error, 1)
	go func() {
		p.observer(m)("a.ts", driver.PhaseEvent{Stage: driver.StageEmit, Status: driver.PhaseStart})
		finished <- p.finish([]manifestRun{{manifest: m, outcomes: []bridge.Outcome{{}}}})
	}()
	select {
	case err := <-finished:
		if err != nil {
			t.Fatalf("finish: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("observer blocked after the progress view exited")
	}
}
