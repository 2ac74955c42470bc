package calc

import (
	"sync"
	"time"
)

// Observation describes one completed evaluation.
type Observation struct {
	Calculator string
	Op         Op
	Duration   time.Duration
	Err        error
}

// Observer is notified after every evaluation. Implementations must be safe
// for concurrent use; calculators are shared between goroutines.
type Observer interface {
	Observe(Observation)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Observation)

// Observe calls f(o).
func (f ObserverFunc) Observe(o Observation) { f(o) }

// NoOpObserver discards observations.
type NoOpObserver struct{}

// Observe does nothing.
func (NoOpObserver) Observe(Observation) {}

// Subject fans observations out to a dynamic set of observers.
type Subject struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewSubject returns an empty Subject.
func NewSubject() *Subject {
	return &Subject{}
}

// Register adds o. Observations already in flight may miss it.
func (s *Subject) Register(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Len returns the number of registered observers.
func (s *Subject) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Observe forwards o to every registered observer, outside the lock.
func (s *Subject) Observe(o Observation) {
	s.mu.RLock()
	snapshot := s.observers[:len(s.observers):len(s.observers)]
	s.mu.RUnlock()
	for _, obs := range snapshot {
		obs.Observe(o)
	}
}
