// Package tui implements the live batch dashboard: batch progress and
// outcomes on the left, per-width statistics and resource usage on the
// right.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	minBodyHeight            = 6
	ResultsPanelWidthPercent = 60

	tickInterval = 500 * time.Millisecond
)

// Options describes the batch the dashboard runs.
type Options struct {
	Calculators []calc.Calculator
	Lines       []orchestration.BatchLine
	Workers     int
	// Timeout bounds each run of the whole batch; zero means no bound.
	Timeout time.Duration
	Verbose bool
	// Source names the input in the header, typically the file path.
	Source  string
	Version string
}

// ExecutionState holds the execution-related fields of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	items      []orchestration.BatchItem
}

// LayoutManager holds terminal dimensions and derives panel sizes.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) resultsWidth() int {
	return l.width * ResultsPanelWidthPercent / 100
}

func (l LayoutManager) widthsWidth() int {
	return l.width - l.resultsWidth()
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	results ResultsModel
	widths  WidthsModel
	footer  FooterModel
	keymap  KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	opts      Options
	ref       *programRef
	paused    bool
}

// NewModel creates the dashboard model.
func NewModel(parentCtx context.Context, opts Options) Model {
	names := make([]string, len(opts.Calculators))
	for i, c := range opts.Calculators {
		names[i] = c.Name()
	}
	keymap := DefaultKeyMap()
	ctx, cancel := context.WithCancel(parentCtx)

	return Model{
		header:  NewHeaderModel(opts.Version, opts.Source),
		results: NewResultsModel(len(opts.Lines), opts.Verbose),
		widths:  NewWidthsModel(names),
		footer:  NewFooterModel(keymap.ShortHelp()),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		opts:      opts,
		ref:       &programRef{},
	}
}

// Init starts the batch, the resource ticker and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBatchCmd(m.ref, m.ctx, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.results.SetProgress(msg.Done, msg.Total)
		}
		return m, nil

	case ObservationMsg:
		// Statistics are cumulative, so they are recorded even while paused.
		m.widths.Observe(calc.Observation(msg))
		return m, nil

	case BatchDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.items = msg.Items
		m.results.SetItems(msg.Items, msg.Summary)
		m.header.SetDone()
		m.footer.SetDone(true, msg.ExitCode != apperrors.ExitSuccess)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleSysStatsCmd(m.ctx), tickCmd())

	case SysStatsMsg:
		m.widths.UpdateSys(sysmon.Stats(msg))
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Rerun):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.results.Reset()
		m.widths.Reset()
		m.footer.SetDone(false, false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.items = nil
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startBatchCmd(m.ref, m.ctx, m.opts, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.results.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.results.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.results.Scroll(-m.results.pageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.results.Scroll(m.results.pageSize())
	}
	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.results.View(), m.widths.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// ExitCode returns the exit code of the last finished run.
func (m Model) ExitCode() int { return m.exitCode }

// Items returns the outcomes of the last finished run.
func (m Model) Items() []orchestration.BatchItem { return m.items }

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.results.SetSize(m.resultsWidth(), m.bodyHeight())
	m.widths.SetSize(m.widthsWidth(), m.bodyHeight())
}

// Run shows the dashboard until the user quits or ctx ends. Observations
// are received through subject. It returns the exit code and the outcomes
// of the last finished run.
func Run(ctx context.Context, subject *calc.Subject, opts Options) (int, []orchestration.BatchItem) {
	initTUIStyles()

	model := NewModel(ctx, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)
	if subject != nil {
		subject.Register(observerBridge{ref: model.ref})
	}

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.ExitCode(), m.Items()
	}
	if err != nil {
		return apperrors.ExitCode(err), nil
	}
	return apperrors.ExitSuccess, nil
}

// startBatchCmd returns a tea.Cmd that evaluates the batch.
func startBatchCmd(ref *programRef, ctx context.Context, opts Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		var (
			runCtx context.Context
			cancel context.CancelFunc
		)
		if opts.Timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		} else {
			runCtx, cancel = context.WithCancel(ctx)
		}
		defer cancel()

		items := orchestration.ExecuteBatch(runCtx, opts.Calculators, opts.Lines, opts.Workers, &TUIProgressReporter{ref: ref}, io.Discard)
		summary := orchestration.SummarizeBatch(items)
		return BatchDoneMsg{
			Items:      items,
			Summary:    summary,
			ExitCode:   orchestration.BatchExitCode(summary, runCtx.Err()),
			Duration:   time.Since(start),
			Generation: gen,
		}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads a resource snapshot.
func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample(ctx))
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
