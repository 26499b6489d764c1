// Package ui renders live progress for batch compilations.
package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hostbridge/internal/driver"
)

// Status is the coarse state of one request.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) finished() bool { return s == StatusDone || s == StatusError }

// Event moves one item forward. Item names a request as passed to
// NewProgressModel; an empty Item only updates the header.
type Event struct {
	Item   string
	Stage  driver.Stage
	Status Status
}

// stageInfo is how far a request is once it enters a stage, and the word
// shown next to it.
type stageInfo struct {
	share float64
	label string
}

var stages = map[driver.Stage]stageInfo{
	driver.StageProgram:  {0.1, "loading"},
	driver.StageSyntax:   {0.3, "parsing"},
	driver.StageOptions:  {0.45, "checking"},
	driver.StageGlobal:   {0.45, "checking"},
	driver.StageSemantic: {0.6, "checking"},
	driver.StageEmit:     {0.9, "emitting"},
}

type row struct {
	name   string
	status Status
	stage  driver.Stage
}

func (r row) label() string {
	switch r.status {
	case StatusQueued:
		return "queued"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return stages[r.stage].label
}

func (r row) share() float64 {
	if r.status.finished() {
		return 1
	}
	return stages[r.stage].share
}

type (
	eventMsg Event
	doneMsg  struct{}
)

type progressModel struct {
	title  string
	events <-chan Event
	spin   spinner.Model
	bar    progress.Model
	rows   []row
	byName map[string]int
	header string // label of the last batch-wide stage
	width  int
	done   bool
}

// NewProgressModel returns a Bubble Tea model that renders per-request
// progress. The model quits once events is closed.
func NewProgressModel(title string, items []string, events <-chan Event) tea.Model {
	return newProgressModel(title, items, events)
}

func newProgressModel(title string, names []string, events <-chan Event) *progressModel {
	m := &progressModel{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6")))),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:   make([]row, len(names)),
		byName: make(map[string]int, len(names)),
		width:  80,
	}
	for i, name := range names {
		m.rows[i] = row{name: name}
		m.byName[name] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.apply(Event(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case spinner.TickMsg:
		if !m.done {
			m.spin, cmd = m.spin.Update(msg)
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width, m.bar.Width = msg.Width, msg.Width-4
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

// next waits for one event; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) apply(ev Event) tea.Cmd {
	if ev.Item == "" {
		if l := (row{status: ev.Status, stage: ev.Stage}).label(); l != "" {
			m.header = l
		}
		return nil
	}
	i, ok := m.byName[ev.Item]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	r.status = ev.Status
	if ev.Status == StatusWorking {
		r.stage = ev.Stage
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction is the overall completion in [0,1].
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.share()
	}
	return sum / float64(len(m.rows))
}
