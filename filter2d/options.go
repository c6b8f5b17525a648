// SPDX-License-Identifier: MIT

package filter2d

import (
	"log/slog"
	"runtime"
)

// Default tuning values.
const (
	// DefaultMinRowsPerBand keeps bands large enough to amortize goroutine start-up.
	DefaultMinRowsPerBand = 4
	// DefaultSeparableTol is the relative threshold σ₂/σ₁ under which a kernel
	// is treated as rank-1.
	DefaultSeparableTol = 1e-12
)

// Option configures the parallel, separable and collective variants.
type Option func(*Options)

// Options holds resolved settings. Zero value is not meaningful; use gatherOptions.
type Options struct {
	workers        int
	minRowsPerBand int
	separableTol   float64
	logger         *slog.Logger
}

// WithWorkers sets the number of bands (parallel) or ranks (collective).
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("filter2d: WithWorkers(n<1)")
	}

	return func(o *Options) { o.workers = n }
}

// WithMinRowsPerBand bounds how thin a parallel band may get.
// Panics if n < 1.
func WithMinRowsPerBand(n int) Option {
	if n < 1 {
		panic("filter2d: WithMinRowsPerBand(n<1)")
	}

	return func(o *Options) { o.minRowsPerBand = n }
}

// WithSeparableTol sets the σ₂/σ₁ threshold used by ConvolveSeparable.
// Panics unless 0 <= tol <= 1.
func WithSeparableTol(tol float64) Option {
	if !(tol >= 0) || tol > 1 {
		panic("filter2d: WithSeparableTol(tol∉[0,1])")
	}

	return func(o *Options) { o.separableTol = tol }
}

// WithLogger routes debug output to l. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		workers:        runtime.GOMAXPROCS(0),
		minRowsPerBand: DefaultMinRowsPerBand,
		separableTol:   DefaultSeparableTol,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o
}
