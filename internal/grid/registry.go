package grid

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/david5010/AetherGrid/internal/table"
)

var (
	ErrUnknownOperator = errors.New("unknown grid operator")
	ErrTransport       = errors.New("grid transport error")
)

// Today is the date argument for the current day's data
const Today = "today"

// Operator is a grid operator (ISO) that publishes load data
type Operator interface {
	Name() string
	// Load returns the observed load for date ("today" or YYYY-MM-DD)
	Load(ctx context.Context, date string) (*table.Table, error)
	// LoadForecast returns the published load forecast for date
	LoadForecast(ctx context.Context, date string) (*table.Table, error)
}

// Factory builds a fresh Operator
type Factory func() (Operator, error)

// Registry maps operator names to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for name
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// New instantiates the operator registered under name
func (r *Registry) New(name string) (Operator, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return factory()
}

// Names returns the registered operator names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func CurrentLoad(ctx context.Context, op Operator) (*table.Table, error) {
	return op.Load(ctx, Today)
}

func CurrentLoadForecast(ctx context.Context, op Operator) (*table.Table, error) {
	return op.LoadForecast(ctx, Today)
}
