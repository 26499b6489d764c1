package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hostbridge/internal/driver"
)

func TestApplyEventTracksItems(t *testing.T) {
	m := newProgressModel("compile", []string{"a.ts", "b.ts"}, nil)

	m.apply(Event{Item: "a.ts", Stage: driver.StageSyntax, Status: StatusWorking})
	if got := m.rows[0].label(); got != "parsing" {
		t.Fatalf("a.ts status = %q", got)
	}
	if got := m.fraction(); got != 0.15 {
		t.Fatalf("fraction = %v, want 0.15", got)
	}

	m.apply(Event{Item: "a.ts", Status: StatusDone})
	m.apply(Event{Item: "b.ts", Status: StatusError})
	if got := m.fraction(); got != 1.0 {
		t.Fatalf("fraction = %v, want 1", got)
	}

	// unknown items are ignored
	m.apply(Event{Item: "zzz.ts", Status: StatusDone})
	view := m.View()
	for _, want := range []string{"compile", "done", "error", "a.ts", "b.ts"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHeaderEvent(t *testing.T) {
	m := newProgressModel("batch", []string{"a.ts"}, nil)
	m.apply(Event{Stage: driver.StageEmit, Status: StatusWorking})
	if m.header != "emitting" {
		t.Fatalf("header = %q", m.header)
	}
	if !strings.Contains(m.View(), "batch (emitting)") {
		t.Fatalf("header not updated:\n%s", m.View())
	}
}

func TestClosedChannelQuits(t *testing.T) {
	events := make(chan Event)
	close(events)
	m := newProgressModel("x", []string{"a.ts"}, events)

	msg := m.next()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("msg = %T, want doneMsg", msg)
	}
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if !next.(*progressModel).done {
		t.Fatal("model not marked done")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a/very/long/path.ts", 10); got != "a/very/..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
