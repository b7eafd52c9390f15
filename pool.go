package md2img

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one engine is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// EnginePool manages a pool of Engine instances for parallel
// rendering. Each engine owns its own backend session, so pooled
// callers never contend on a shared browser. Engines are created
// lazily on first acquire to avoid startup delay.
type EnginePool struct {
	size    int
	opts    []Option
	engines []*Engine
	sem     chan *Engine
	mu      sync.Mutex
	created int
	closed  bool
}

// NewEnginePool creates a pool with capacity for n Engine instances,
// each constructed with the given options. Engines are created lazily
// when acquired, not at pool creation.
func NewEnginePool(n int, opts ...Option) *EnginePool {
	if n < 1 {
		n = 1
	}

	return &EnginePool{
		size:    n,
		opts:    opts,
		engines: make([]*Engine, 0, n),
		sem:     make(chan *Engine, n),
	}
}

// Acquire gets an engine from the pool, creating one if needed.
// Blocks if all engines are in use.
func (p *EnginePool) Acquire() (*Engine, error) {
	// Try to get an existing engine (non-blocking)
	select {
	case eng := <-p.sem:
		return eng, nil
	default:
	}

	// Check if we can create a new engine
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new engine outside the lock
		eng, err := New(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.engines = append(p.engines, eng)
		p.mu.Unlock()

		return eng, nil
	}
	p.mu.Unlock()

	// All engines created, wait for one to be released
	return <-p.sem, nil
}

// Release returns an engine to the pool. The send happens under the
// lock so it cannot race the channel close in Close. It cannot block:
// at most size engines exist, so the buffered channel always has room.
func (p *EnginePool) Release(eng *Engine) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	p.sem <- eng
}

// Close releases all backend resources.
// Returns an aggregated error if multiple engines fail to close.
func (p *EnginePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	engines := p.engines
	p.mu.Unlock()

	var errs []error
	for _, eng := range engines {
		if err := eng.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *EnginePool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
