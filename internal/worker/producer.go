package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Producer errors.
var (
	ErrAlreadyRunning = errors.New("producer already running")
	ErrNotInitialized = errors.New("producer has no value yet")
)

// FetchFunc produces a fresh value for a producer's state cell.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ProducerConfig holds configuration for creating a Producer.
type ProducerConfig[T any] struct {
	// Name identifies the producer in logs and status.
	Name string

	// Interval is the time between refreshes.
	Interval time.Duration

	// Fetch produces the next value.
	Fetch FetchFunc[T]

	// Clock drives the ticker. Default: clockwork.NewRealClock()
	Clock clockwork.Clock

	// Logger for producer operations.
	Logger zerolog.Logger

	// Paused, if set, is consulted on every tick; a paused tick keeps the
	// current value.
	Paused func(ctx context.Context) bool

	// OnUpdate, if set, is called from the producer goroutine after each
	// successful refresh.
	OnUpdate func(ctx context.Context, value T)
}

// Status is a point-in-time view of a producer.
type Status struct {
	Name      string
	Interval  time.Duration
	Running   bool
	Ready     bool
	UpdatedAt time.Time
	Refreshes int64
	Failures  int64
	Skipped   int64
	LastError string
}

// Producer owns one state cell and replaces its value on a fixed interval.
type Producer[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	clock    clockwork.Clock
	logger   zerolog.Logger
	paused   func(ctx context.Context) bool
	onUpdate func(ctx context.Context, value T)

	mu        sync.RWMutex
	value     T
	updatedAt time.Time
	ready     bool
	refreshes int64
	failures  int64
	skipped   int64
	lastErr   string

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProducer creates a new producer. It does not fetch until Init or Start.
func NewProducer[T any](cfg ProducerConfig[T]) *Producer[T] {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Producer[T]{
		name:     cfg.Name,
		interval: cfg.Interval,
		fetch:    cfg.Fetch,
		clock:    clock,
		logger:   cfg.Logger.With().Str("producer", cfg.Name).Logger(),
		paused:   cfg.Paused,
		onUpdate: cfg.OnUpdate,
	}
}

// Init performs the initial fetch synchronously.
func (p *Producer[T]) Init(ctx context.Context) error {
	v, err := p.fetch(ctx)
	if err != nil {
		p.recordFailure(err)
		return fmt.Errorf("initial %s fetch: %w", p.name, err)
	}
	p.set(ctx, v)
	return nil
}

// Start initializes the cell if needed and starts the refresh loop.
// The loop runs until Stop is called or ctx is cancelled; a producer whose
// loop ended with ctx can be started again.
func (p *Producer[T]) Start(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.runningLocked() {
		return ErrAlreadyRunning
	}
	p.clearRunLocked()

	if !p.Ready() {
		if err := p.Init(ctx); err != nil {
			return err
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	ticker := p.clock.NewTicker(p.interval)
	done := make(chan struct{})

	p.cancel = cancel
	p.done = done

	go p.run(loopCtx, ticker, done)

	p.logger.Info().
		Dur("interval", p.interval).
		Msg("producer started")

	return nil
}

// Stop cancels the refresh loop and waits for it to exit. No refresh is
// applied after Stop returns. Calling Stop on a stopped producer is a no-op.
func (p *Producer[T]) Stop() {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.cancel == nil {
		return
	}

	p.cancel()
	<-p.done
	p.clearRunLocked()

	p.logger.Info().Msg("producer stopped")
}

// Running reports whether the refresh loop is active. It turns false once
// the loop exits, whether through Stop or cancellation of the Start context.
func (p *Producer[T]) Running() bool {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.runningLocked()
}

func (p *Producer[T]) runningLocked() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// clearRunLocked releases the state of an exited or stopped loop.
func (p *Producer[T]) clearRunLocked() {
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = nil
	p.done = nil
}

// Ready reports whether the cell holds a value.
func (p *Producer[T]) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

// Current returns the latest value and when it was produced.
func (p *Producer[T]) Current() (T, time.Time, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.ready {
		var zero T
		return zero, time.Time{}, ErrNotInitialized
	}
	return p.value, p.updatedAt, nil
}

// Status returns refresh statistics.
func (p *Producer[T]) Status() Status {
	running := p.Running()

	p.mu.RLock()
	defer p.mu.RUnlock()

	return Status{
		Name:      p.name,
		Interval:  p.interval,
		Running:   running,
		Ready:     p.ready,
		UpdatedAt: p.updatedAt,
		Refreshes: p.refreshes,
		Failures:  p.failures,
		Skipped:   p.skipped,
		LastError: p.lastErr,
	}
}

func (p *Producer[T]) run(ctx context.Context, ticker clockwork.Ticker, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.refresh(ctx)
		}
	}
}

func (p *Producer[T]) refresh(ctx context.Context) {
	if p.paused != nil && p.paused(ctx) {
		p.mu.Lock()
		p.skipped++
		p.mu.Unlock()
		p.logger.Debug().Msg("refresh paused")
		return
	}

	v, err := p.fetch(ctx)
	if err != nil {
		p.recordFailure(err)
		p.logger.Error().Err(err).Msg("refresh failed, keeping previous value")
		return
	}

	// A cancelled loop must not publish.
	if ctx.Err() != nil {
		return
	}

	p.set(ctx, v)
}

func (p *Producer[T]) set(ctx context.Context, v T) {
	now := p.clock.Now()

	p.mu.Lock()
	p.value = v
	p.updatedAt = now
	p.ready = true
	p.refreshes++
	p.lastErr = ""
	p.mu.Unlock()

	p.logger.Debug().
		Time("updated_at", now).
		Msg("state refreshed")

	if p.onUpdate != nil {
		p.onUpdate(ctx, v)
	}
}

func (p *Producer[T]) recordFailure(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures++
	p.lastErr = err.Error()
}
