package ui

import (
	"context"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ytcatalog/internal/catalog"
	"ytcatalog/internal/progress"
)

// maxWarnings bounds the warning list kept for display.
const maxWarnings = 50

// ExportFunc runs one export, reporting progress to rp.
type ExportFunc func(ctx context.Context, input string, rp progress.Reporter) (catalog.Exported, error)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	input  string
	export ExportFunc

	// Run state
	stages   []stageLine
	warnings []string
	out      catalog.Exported
	err      error
	done     bool

	// UI
	width   int
	styles  Styles
	spinner spinner.Model
	bar     bubblesprogress.Model

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, input string, export ExportFunc) Model {
	c, cancel := context.WithCancel(ctx)
	sty := DefaultStyles()
	sp := spinner.New()
	sp.Style = sty.Spinner
	return Model{
		ctx:     c,
		cancel:  cancel,
		input:   input,
		export:  export,
		styles:  sty,
		spinner: sp,
		bar: bubblesprogress.New(
			bubblesprogress.WithDefaultGradient(),
			bubblesprogress.WithWidth(30),
		),
		eventCh: make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenEventsCmd(), m.exportCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case updateMsg:
		m = m.applyUpdate(msg.U)
		return m, m.listenEventsCmd()
	case logMsg:
		if msg.L.Level == progress.LevelWarn && len(m.warnings) < maxWarnings {
			m.warnings = append(m.warnings, msg.L.Line)
		}
		return m, m.listenEventsCmd()
	case resultMsg:
		// The export's return value is authoritative; the Result only confirms the end.
		return m, m.listenEventsCmd()
	case exportDoneMsg:
		m.done = true
		m.out = msg.Out
		m.err = msg.Err
		for i := range m.stages {
			m.stages[i].done = true
		}
		m.cancel()
		return m, tea.Quit
	case quitMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) applyUpdate(u progress.Update) Model {
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		for i := range m.stages {
			m.stages[i].done = true
		}
	}
	for i := range m.stages {
		if m.stages[i].stage == u.Stage {
			m.stages[i].status = u.Message
			m.stages[i].count = u.Count
			m.stages[i].total = u.Total
			return m
		}
	}
	for i := range m.stages {
		m.stages[i].done = true
	}
	m.stages = append(m.stages, stageLine{
		stage:  u.Stage,
		status: u.Message,
		count:  u.Count,
		total:  u.Total,
		done:   u.Stage == progress.StageCompleted || u.Stage == progress.StageError,
	})
	return m
}

func (m Model) View() string {
	body := m.viewHeader() + "\n\n" + m.viewStages()
	if w := m.viewWarnings(); w != "" {
		body += "\n" + w
	}
	if s := m.viewSummary(); s != "" {
		body += "\n" + s
	}
	return body
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return quitMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// exportCmd runs the export on the command goroutine; progress flows back
// through eventCh while it runs.
func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.export(m.ctx, m.input, teaReporter{ch: m.eventCh, done: m.ctx.Done()})
		return exportDoneMsg{Out: out, Err: err}
	}
}

type teaReporter struct {
	ch   chan tea.Msg
	done <-chan struct{}
}

func (r teaReporter) Update(u progress.Update) {
	// Block on completion messages to ensure they're delivered
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.send(updateMsg{U: u})
		return
	}
	select {
	case r.ch <- updateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	if l.Level == progress.LevelWarn {
		r.send(logMsg{L: l})
		return
	}
	select {
	case r.ch <- logMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	r.send(resultMsg{R: res})
}

// send blocks until the message is queued or the program is gone.
func (r teaReporter) send(msg tea.Msg) {
	select {
	case r.ch <- msg:
	case <-r.done:
	}
}
