// Package asset resolves model names into scene nodes. Resolution may happen
// off the simulation goroutine, but nodes are only handed to their owners from
// Poll, which the frame loop calls on the simulation goroutine.
package asset

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"dinorun/internal/scene"
)

var ErrUnknownModel = errors.New("unknown model")

// ReadyFunc receives a freshly created node that is already part of the scene.
type ReadyFunc func(*scene.Node)

type completion struct {
	model Model
	ready ReadyFunc
}

// Loader resolves models asynchronously.
type Loader struct {
	catalog Catalog
	scene   *scene.Scene
	latency time.Duration

	mu      sync.Mutex
	done    []completion
	pending int
	closed  bool
	wg      sync.WaitGroup
}

// Option configures a Loader.
type Option func(*Loader)

// WithLatency delays every load, which mimics fetching a model from disk or
// network.
func WithLatency(d time.Duration) Option {
	return func(l *Loader) { l.latency = d }
}

// WithCatalog replaces the default catalog.
func WithCatalog(c Catalog) Option {
	return func(l *Loader) { l.catalog = c }
}

func NewLoader(sc *scene.Scene, opts ...Option) *Loader {
	l := &Loader{
		catalog: DefaultCatalog(),
		scene:   sc,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts resolving a model. ready runs during a later Poll.
func (l *Loader) Load(name string, ready ReadyFunc) error {
	m, ok := l.catalog[name]
	if !ok {
		return fmt.Errorf("asset: load %q: %w", name, ErrUnknownModel)
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.pending++
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if l.latency > 0 {
			time.Sleep(l.latency)
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		l.pending--
		if l.closed {
			return
		}
		l.done = append(l.done, completion{model: m, ready: ready})
	}()
	return nil
}

// Poll attaches every finished load and returns how many were delivered.
// Must be called from the goroutine that owns the scene.
func (l *Loader) Poll() int {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0
	}
	batch := l.done
	l.done = nil
	l.mu.Unlock()

	for _, c := range batch {
		n := scene.NewNode(c.model.Name, c.model.Bounds)
		l.scene.Add(n)
		if c.ready != nil {
			c.ready(n)
		}
	}
	return len(batch)
}

// Pending reports loads that have not finished resolving yet.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Wait blocks until every started load has resolved. Results still need a
// Poll to be delivered.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close drops queued completions; loads finishing afterwards are ignored.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.done = nil
	l.mu.Unlock()
}

// Immediate resolves models synchronously inside Load.
type Immediate struct {
	catalog Catalog
	scene   *scene.Scene
}

func NewImmediate(sc *scene.Scene) *Immediate {
	return &Immediate{catalog: DefaultCatalog(), scene: sc}
}

func (i *Immediate) Load(name string, ready ReadyFunc) error {
	m, ok := i.catalog[name]
	if !ok {
		return fmt.Errorf("asset: load %q: %w", name, ErrUnknownModel)
	}
	n := scene.NewNode(m.Name, m.Bounds)
	i.scene.Add(n)
	if ready != nil {
		ready(n)
	}
	return nil
}
