package calc

import (
	"sync"
	"sync/atomic"
	"testing"
)

type countingObserver struct {
	count atomic.Int64
}

func (o *countingObserver) Observe(Observation) { o.count.Add(1) }

func TestSubject_FanOut(t *testing.T) {
	s := NewSubject()
	a, b := &countingObserver{}, &countingObserver{}
	s.Register(a)
	s.Register(b)
	s.Register(nil)

	s.Observe(Observation{Calculator: "w8", Op: OpAdd})

	if a.count.Load() != 1 || b.count.Load() != 1 {
		t.Errorf("counts = %d, %d, want 1, 1", a.count.Load(), b.count.Load())
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (nil is ignored)", s.Len())
	}
}

// TestSubject_ConcurrentRegister should be run with -race.
func TestSubject_ConcurrentRegister(t *testing.T) {
	s := NewSubject()
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Register(&countingObserver{})
		}()
		go func() {
			defer wg.Done()
			s.Observe(Observation{Op: OpMul})
		}()
	}
	wg.Wait()
	if s.Len() != 100 {
		t.Errorf("Len() = %d, want 100", s.Len())
	}
}

func TestSubject_AsCalculatorObserver(t *testing.T) {
	s := NewSubject()
	obs := &countingObserver{}
	s.Register(obs)
	c := New[uint32]("w32", WithObserver(s))
	for range 3 {
		_, _ = c.Evaluate(t.Context(), Request{OpSub, []string{"9", "4"}})
	}
	if obs.count.Load() != 3 {
		t.Errorf("observed %d evaluations, want 3", obs.count.Load())
	}
}
