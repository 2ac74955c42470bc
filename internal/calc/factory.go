package calc

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownCalculator is returned by Get for an unregistered name.
var ErrUnknownCalculator = errors.New("unknown calculator")

// CalculatorFactory creates and caches calculators by name.
type CalculatorFactory interface {
	// List returns the registered names, sorted.
	List() []string
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// GetAll returns every calculator in List order.
	GetAll() []Calculator
	// Register adds or replaces a creator. Replacing drops the cached
	// instance.
	Register(name string, creator func() Calculator) error
}

// DefaultFactory is the standard CalculatorFactory. Creators run lazily,
// once per name.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Calculator
	cache    map[string]Calculator
}

// NewDefaultFactory returns a factory with the four built-in widths
// registered as "w8", "w16", "w32" and "w64". opts apply to every one.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Calculator),
		cache:    make(map[string]Calculator),
	}
	f.creators["w8"] = func() Calculator { return New[uint8]("w8", opts...) }
	f.creators["w16"] = func() Calculator { return New[uint16]("w16", opts...) }
	f.creators["w32"] = func() Calculator { return New[uint32]("w32", opts...) }
	f.creators["w64"] = func() Calculator { return New[uint64]("w64", opts...) }
	return f
}

// List returns the registered names, sorted.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the calculator registered under name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	if c, ok := f.cache[name]; ok {
		f.mu.RUnlock()
		return c, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.cache[name]; ok {
		return c, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
	c := creator()
	f.cache[name] = c
	return c, nil
}

// GetAll returns every registered calculator in List order.
func (f *DefaultFactory) GetAll() []Calculator {
	names := f.List()
	calcs := make([]Calculator, 0, len(names))
	for _, name := range names {
		if c, err := f.Get(name); err == nil {
			calcs = append(calcs, c)
		}
	}
	return calcs
}

// Register adds or replaces the creator for name.
func (f *DefaultFactory) Register(name string, creator func() Calculator) error {
	if name == "" || name == "all" {
		return fmt.Errorf("invalid calculator name %q", name)
	}
	if creator == nil {
		return fmt.Errorf("nil creator for calculator %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.cache, name)
	return nil
}
