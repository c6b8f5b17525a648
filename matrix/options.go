// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for constructors and comparison
// kernels. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies setters in order.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - validateNaNInf controls whether Set()/ingestion rejects NaN/Inf at all.
//     The policy is per-instance and carried by Clone/View.
//   - eps/rtol are consumed by AllClose-like comparisons only; the filter
//     kernels never compare values.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the absolute tolerance used by AllCloseOpts.
	DefaultEpsilon = 1e-12

	// DefaultRelTol defines the relative tolerance used by AllCloseOpts.
	DefaultRelTol = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicRelTolInvalid  = "matrix: WithRelTol: rtol must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; public entry points
// accept `...Option` and resolve them via gatherOptions.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	rtol           float64 // >= 0; DefaultRelTol
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithEpsilon sets the absolute tolerance eps used by tolerant comparisons.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithRelTol sets the relative tolerance used by tolerant comparisons.
// Panics when rtol is negative or non-finite.
func WithRelTol(rtol float64) Option {
	if isNonFinite(rtol) || rtol < 0 {
		panic(panicRelTolInvalid)
	}

	return func(o *Options) { o.rtol = rtol }
}

// WithValidateNaNInf enables strict finite-value validation.
// This is the default; use WithNoValidateNaNInf to relax.
//
// Notes:
//   - Affects newly created matrices only; existing matrices keep their policy.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
//
// AI-Hints:
//   - Useful when ingesting external grids with known ±Inf placeholders.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves user setters on top of documented defaults.
// The returned Options is a value; later mutation of the setters has no effect.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// ValidateNaNInf reports whether the finite-only policy is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// Epsilon returns the absolute comparison tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// RelTol returns the relative comparison tolerance.
func (o Options) RelTol() float64 { return o.rtol }

// gatherOptions applies setters in order; last-writer-wins semantics.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		rtol:           DefaultRelTol,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
