package hotel

import (
	"log/slog"

	"github.com/warp/hotel-engine/generic"
)

// Option configures stores, the ledger and the reservation service.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	clock   generic.Clock
	overlap generic.OverlapPolicy
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock used for timestamps and date validation.
func WithClock(c generic.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithOverlapPolicy sets how the ledger decides two stays collide.
// Only the ledger reads it.
func WithOverlapPolicy(p generic.OverlapPolicy) Option {
	return func(o *options) { o.overlap = p }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:   generic.SystemClock{},
		overlap: generic.OverlapInclusive,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.clock == nil {
		o.clock = generic.SystemClock{}
	}
	if o.overlap == "" {
		o.overlap = generic.OverlapInclusive
	}
	return o
}
