package main

import (
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"hostbridge/internal/driver"
	"hostbridge/internal/ui"
)

// progressUI feeds stage events of a batch into a Bubble Tea progress view.
type progressUI struct {
	events chan ui.Event
	done   chan error
	exited chan struct{} // closed once the program stops reading events
}

func progressItem(m *manifest, input string) string {
	return filepath.Base(m.path) + ":" + input
}

func startProgress(w io.Writer, manifests []*manifest) *progressUI {
	var names []string
	for _, m := range manifests {
		for _, req := range m.Requests {
			names = append(names, progressItem(m, req.InputPath))
		}
	}
	p := &progressUI{events: make(chan ui.Event, 64), done: make(chan error, 1), exited: make(chan struct{})}
	prog := tea.NewProgram(ui.NewProgressModel("compiling", names, p.events), tea.WithOutput(w), tea.WithInput(nil))
	go func() {
		_, err := prog.Run()
		close(p.exited)
		p.done <- err
	}()
	return p
}

// observer returns the bridge observer for one manifest; nil when no
// progress view is running.
func (p *progressUI) observer(m *manifest) func(string, driver.PhaseEvent) {
	if p == nil {
		return nil
	}
	return func(input string, ev driver.PhaseEvent) {
		if ev.Status != driver.PhaseStart {
			return
		}
		p.send(ui.Event{Item: progressItem(m, input), Stage: ev.Stage, Status: ui.StatusWorking})
	}
}

// send drops ev once the view has exited (interrupt, terminal error) so
// compile workers never block on it.
func (p *progressUI) send(ev ui.Event) {
	select {
	case p.events <- ev:
	case <-p.exited:
	}
}

// finish marks every outcome and waits for the view to exit.
func (p *progressUI) finish(runs []manifestRun) error {
	if p == nil {
		return nil
	}
	for _, run := range runs {
		for i, o := range run.outcomes {
			status := ui.StatusDone
			if !o.Result.Succeeded() {
				status = ui.StatusError
			}
			p.send(ui.Event{Item: progressItem(run.manifest, run.manifest.Requests[i].InputPath), Status: status})
		}
	}
	close(p.events)
	return <-p.done
}
