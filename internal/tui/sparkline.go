package tui

// sparklineChars maps levels 0..7 to the block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the most recent percentage samples, oldest first.
type History struct {
	samples []float64
	limit   int
}

// NewHistory returns a history holding at most limit samples.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 1)}
}

// Push appends v, dropping the oldest sample when full.
func (h *History) Push(v float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, v)
}

// Len returns the number of samples held.
func (h *History) Len() int { return len(h.samples) }

// Last returns the most recent sample, or 0 when empty.
func (h *History) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Values returns the samples, oldest first. The slice must not be modified.
func (h *History) Values() []float64 { return h.samples }

// SetLimit changes the capacity, keeping the newest samples that fit.
func (h *History) SetLimit(limit int) {
	h.limit = max(limit, 1)
	if over := len(h.samples) - h.limit; over > 0 {
		h.samples = append(h.samples[:0], h.samples[over:]...)
	}
}

// Reset drops every sample.
func (h *History) Reset() { h.samples = h.samples[:0] }

// RenderSparkline renders percentages (clamped to 0..100) as block
// characters, one per value.
func RenderSparkline(values []float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		runes[i] = sparklineChars[min(int(v/100*7), 7)]
	}
	return string(runes)
}
