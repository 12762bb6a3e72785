package matrix

import (
	"context"
	"log/slog"

	"github.com/utkarsh5026/matpool/metrics"
	"github.com/utkarsh5026/matpool/pool"
)

// DefaultWorkers is the pool size used when WithWorkers is not given.
const DefaultWorkers = 16

// Kernel computes one output cell from a row of the left operand and a column of
// the right one. ctx belongs to the worker running the cell; pool.WorkerID reads
// the worker index from it.
type Kernel[T Number] func(ctx context.Context, row, col Vector[T]) (T, error)

// Option configures Multiply and NewEngine.
type Option func(*config)

type config struct {
	workers     int
	queueSize   int
	partitioner pool.Partitioner
	kernel      any
	counter     metrics.Counter
	logger      *slog.Logger
	pinWorkers  bool
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		workers:     DefaultWorkers,
		partitioner: pool.ModuloPartitioner{},
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithWorkers sets the number of workers P. Cell idx runs on worker idx mod P
// under the default partitioner.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithQueueSize sets the capacity of each worker queue. Defaults to the worker count.
func WithQueueSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithPartitioner replaces the idx mod P routing.
func WithPartitioner(p pool.Partitioner) Option {
	return func(c *config) {
		if p != nil {
			c.partitioner = p
		}
	}
}

// WithKernel replaces DotProduct as the per-cell computation.
// T must match the element type of the engine; NewEngine panics otherwise.
func WithKernel[T Number](k Kernel[T]) Option {
	return func(c *config) {
		if k != nil {
			c.kernel = k
		}
	}
}

// WithCounter reports call, cell and per-worker counts to sink.
func WithCounter(sink metrics.Counter) Option {
	return func(c *config) {
		c.counter = sink
	}
}

// WithLogger sets the logger for kernel failures and engine lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCPUAffinity pins each worker to one CPU where the platform allows it.
func WithCPUAffinity(enabled bool) Option {
	return func(c *config) {
		c.pinWorkers = enabled
	}
}

func (c *config) poolOptions() []pool.WorkerPoolOption {
	opts := []pool.WorkerPoolOption{
		pool.WithWorkerCount(c.workers),
		pool.WithPartitioner(c.partitioner),
		pool.WithLogger(c.logger),
		pool.WithContinueOnError(true),
		pool.WithCPUAffinity(c.pinWorkers),
	}
	if c.queueSize > 0 {
		opts = append(opts, pool.WithTaskBuffer(c.queueSize))
	}
	return opts
}
