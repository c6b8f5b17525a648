// SPDX-License-Identifier: MIT

// Package heatmap renders a grid as a colour image with gonum/plot. The
// output format (png, svg, pdf, ...) follows the file extension.
package heatmap

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvfilter/matrix"
)

var (
	// ErrEmptyGrid indicates a grid with no cells.
	ErrEmptyGrid = errors.New("heatmap: empty grid")

	// ErrNoFiniteCells indicates a grid holding only NaN and ±Inf.
	ErrNoFiniteCells = errors.New("heatmap: no finite cells")
)

// Defaults.
const (
	DefaultWidth       = 6 * vg.Inch
	DefaultHeight      = 6 * vg.Inch
	DefaultPaletteSize = 64
)

// Option configures Render.
type Option func(*options)

type options struct {
	width, height vg.Length
	title         string
	colours       int
}

// WithSize sets the image size.
func WithSize(w, h vg.Length) Option {
	return func(o *options) { o.width, o.height = w, h }
}

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithPaletteSize sets the number of palette colours (min 2).
func WithPaletteSize(n int) Option {
	return func(o *options) {
		if n >= 2 {
			o.colours = n
		}
	}
}

// grid adapts a Dense to plotter.GridXYZ. Rows are flipped so row 0 is
// drawn at the top, as the grid reads in a text file. Min and Max give the
// colour range over finite cells only; NewHeatMap picks them up, and ±Inf
// cells are then drawn as underflow or overflow.
type grid struct {
	m          *matrix.Dense
	rows, cols int
	lo, hi     float64
}

// newGrid scans m once for its finite range. ok is false when m has no
// finite cell.
func newGrid(m *matrix.Dense) (g grid, ok bool) {
	g.m = m
	g.rows, g.cols = m.Shape()
	m.Do(func(_, _ int, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
		if !ok {
			g.lo, g.hi, ok = v, v, true
			return true
		}
		g.lo, g.hi = math.Min(g.lo, v), math.Max(g.hi, v)
		return true
	})
	if g.lo == g.hi {
		// A constant grid has no colour range; centre it.
		g.lo, g.hi = g.lo-0.5, g.hi+0.5
	}

	return g, ok
}

func (g grid) Min() float64 { return g.lo }

func (g grid) Max() float64 { return g.hi }

func (g grid) Dims() (c, r int) { return g.cols, g.rows }

func (g grid) Z(c, r int) float64 {
	return g.m.RawData()[(g.rows-1-r)*g.cols+c]
}

func (g grid) X(c int) float64 { return float64(c) }

func (g grid) Y(r int) float64 { return float64(r) }

// Render draws m to path.
// Errors: ErrEmptyGrid, ErrNoFiniteCells, matrix.ErrNilMatrix, gonum/plot
// save errors.
func Render(m *matrix.Dense, path string, opts ...Option) error {
	if m == nil {
		return fmt.Errorf("heatmap: %w", matrix.ErrNilMatrix)
	}
	if m.IsEmpty() {
		return ErrEmptyGrid
	}
	o := options{width: DefaultWidth, height: DefaultHeight, colours: DefaultPaletteSize}
	for _, opt := range opts {
		opt(&o)
	}

	g, ok := newGrid(m)
	if !ok {
		return ErrNoFiniteCells
	}
	h := plotter.NewHeatMap(g, palette.Heat(o.colours, 1))

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row (flipped)"
	p.Add(h)

	if err := p.Save(o.width, o.height, path); err != nil {
		return fmt.Errorf("heatmap: save %s: %w", path, err)
	}

	return nil
}
