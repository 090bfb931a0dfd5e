// Package refresh coalesces refresh requests from anywhere in the process
// into debounced refresh cycles.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// DefaultDelay is the debounce window used when none is configured.
const DefaultDelay = 100 * time.Millisecond

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zeplin_refresh_cycles_total",
		Help: "Refresh cycles run",
	})
	handlerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zeplin_refresh_handler_errors_total",
		Help: "Refresh handler failures by handler name",
	}, []string{"handler"})
)

// Handler reacts to a refresh cycle.
type Handler func(ctx context.Context) error

type namedHandler struct {
	name string
	fn   Handler
}

// Coordinator turns bursts of refresh requests into single refresh cycles.
//
// Requests arriving within the debounce window of each other collapse into
// one cycle. Requests arriving while a cycle runs schedule exactly one more.
type Coordinator struct {
	delay  time.Duration
	logger logrus.FieldLogger

	requests chan struct{}

	mu       sync.Mutex
	handlers []namedHandler
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCoordinator creates a Coordinator. A non-positive delay selects
// DefaultDelay.
func NewCoordinator(delay time.Duration, logger logrus.FieldLogger) *Coordinator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Coordinator{
		delay:    delay,
		logger:   logger.WithField("component", "refresh"),
		requests: make(chan struct{}, 1),
	}
}

// Register adds a handler. Handlers run in registration order.
func (c *Coordinator) Register(name string, fn Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, namedHandler{name: name, fn: fn})
}

// RequestRefresh schedules a refresh cycle. It never blocks and may be
// called from any goroutine, before Start and after Close.
func (c *Coordinator) RequestRefresh() {
	select {
	case c.requests <- struct{}{}:
	default:
		// A request is already pending.
	}
}

// Start runs the debounce loop until ctx is done or Close is called.
// Calling Start on a running coordinator does nothing.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.loop(ctx, c.done)
}

// Close stops the loop and waits for a running cycle to finish. No timer
// outlives Close.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (c *Coordinator) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.requests:
			// Reset or start the debounce timer
			if timer == nil {
				timer = time.NewTimer(c.delay)
			} else {
				timer.Reset(c.delay)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			c.runCycle(ctx)
		}
	}
}

func (c *Coordinator) runCycle(ctx context.Context) {
	c.mu.Lock()
	handlers := append([]namedHandler(nil), c.handlers...)
	c.mu.Unlock()

	cyclesTotal.Inc()
	c.logger.WithField("handlers", len(handlers)).Debug("Running refresh cycle")

	for _, h := range handlers {
		if err := h.fn(ctx); err != nil {
			handlerErrorsTotal.WithLabelValues(h.name).Inc()
			c.logger.WithError(err).WithField("handler", h.name).Warn("Refresh handler failed")
		}
	}
}
