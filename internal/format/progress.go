package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the estimate shown while the observed rate is still tiny.
const maxETA = 24 * time.Hour

// ProgressBar renders a bar of the given length for a fraction in [0, 1].
// Out-of-range fractions are clamped.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines a bar, the percentage and the ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), min(max(progress, 0), 1)*100, FormatETA(eta))
}

// BatchProgress tracks how many of a fixed number of items have completed
// and derives an ETA from the average time per item. It is safe for
// concurrent use.
type BatchProgress struct {
	mu        sync.Mutex
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewBatchProgress starts tracking total items.
func NewBatchProgress(total int) *BatchProgress {
	return &BatchProgress{total: total, startTime: time.Now(), now: time.Now}
}

// Advance marks one more item as done and returns the completed fraction.
func (p *BatchProgress) Advance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	return p.fraction()
}

// Fraction returns the completed fraction in [0, 1]; 0 when total is 0.
func (p *BatchProgress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fraction()
}

func (p *BatchProgress) fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

// Done returns the number of completed items and the total.
func (p *BatchProgress) Done() (done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.total
}

// ETA estimates the remaining time. It returns 0 before the first item
// completes and after the last.
func (p *BatchProgress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == 0 || p.done >= p.total {
		return 0
	}
	perItem := p.now().Sub(p.startTime) / time.Duration(p.done)
	eta := perItem * time.Duration(p.total-p.done)
	return min(eta, maxETA)
}
