package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program. It is a no-op until a
// program is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by
// forwarding batch progress as ProgressMsg.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, _ io.Writer) {
	defer wg.Done()
	for update := range progressChan {
		if update.Total == 0 {
			update.Total = total
		}
		t.ref.Send(ProgressMsg{Done: update.Done, Total: update.Total})
	}
}

// observerBridge forwards calculator observations as ObservationMsg.
type observerBridge struct {
	ref *programRef
}

var _ calc.Observer = observerBridge{}

func (b observerBridge) Observe(o calc.Observation) {
	b.ref.Send(ObservationMsg(o))
}
