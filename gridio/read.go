// SPDX-License-Identifier: MIT

package gridio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvfilter/matrix"
)

// maxLineBytes caps a single grid row.
const maxLineBytes = 64 << 20

// ReadOption configures Read.
type ReadOption func(*readOptions)

type readOptions struct {
	format         Format
	allowNonFinite bool
}

// WithFormat forces a delimiter instead of detecting it.
func WithFormat(f Format) ReadOption {
	return func(o *readOptions) { o.format = f }
}

// WithAllowNonFinite accepts NaN and ±Inf tokens.
func WithAllowNonFinite() ReadOption {
	return func(o *readOptions) { o.allowNonFinite = true }
}

// token is one value and its 1-based byte column.
type token struct {
	text string
	col  int
}

// Read parses a grid from r. name is used only in error locations.
// An input with no data lines yields a 0×0 grid. Blank lines and lines
// starting with '#' are skipped in both formats; CSV fields may be quoted.
//
// Errors: *MalformedGridError (errors.Is ErrMalformedGrid; ragged rows also
// match matrix.ErrNonRectangular, non-finite values matrix.ErrNaNInf), or
// the reader's own error.
func Read(r io.Reader, name string, opts ...ReadOption) (*matrix.Dense, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	format := o.format
	if format == FormatAuto {
		var err error
		if format, r, err = detectFormat(r); err != nil {
			return nil, fmt.Errorf("gridio: read %s: %w", name, err)
		}
	}

	b := gridBuilder{name: name, allowNonFinite: o.allowNonFinite, cols: -1}
	var err error
	if format == FormatCSV {
		err = b.readCSV(r)
	} else {
		err = b.readFields(r)
	}
	if err != nil {
		return nil, err
	}

	return b.build()
}

// detectFormat reads up to the first data line, picks CSV when it holds a
// comma, and returns a reader that replays the consumed bytes.
func detectFormat(r io.Reader) (Format, io.Reader, error) {
	br := bufio.NewReader(r)
	var seen strings.Builder
	for {
		line, err := br.ReadString('\n')
		seen.WriteString(line)
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			format := FormatWhitespace
			if strings.Contains(line, ",") {
				format = FormatCSV
			}
			return format, io.MultiReader(strings.NewReader(seen.String()), br), nil
		}
		if err == io.EOF {
			return FormatWhitespace, strings.NewReader(seen.String()), nil
		}
		if err != nil {
			return FormatAuto, nil, err
		}
	}
}

// gridBuilder accumulates parsed rows and enforces a rectangular shape.
type gridBuilder struct {
	name           string
	allowNonFinite bool
	data           []float64
	rows, cols     int
}

// addRow parses one data line's tokens.
func (b *gridBuilder) addRow(line int, toks []token) error {
	for _, tk := range toks {
		v, err := parseValue(tk.text, b.allowNonFinite)
		if err != nil {
			err.File, err.Line, err.Column = b.name, line, tk.col
			return err
		}
		b.data = append(b.data, v)
	}

	if b.cols < 0 {
		b.cols = len(toks)
	} else if len(toks) != b.cols {
		col := 1
		if len(toks) > b.cols {
			col = toks[b.cols].col
		} else if len(toks) > 0 {
			last := toks[len(toks)-1]
			col = last.col + len(last.text)
		}
		return &MalformedGridError{
			File: b.name, Line: line, Column: col,
			Reason: fmt.Sprintf("row has %d values, want %d", len(toks), b.cols),
			Err:    matrix.ErrNonRectangular,
		}
	}
	b.rows++

	return nil
}

func (b *gridBuilder) build() (*matrix.Dense, error) {
	if b.rows == 0 {
		b.cols = 0
	}
	var mopts []matrix.Option
	if b.allowNonFinite {
		mopts = append(mopts, matrix.WithNoValidateNaNInf())
	}

	return matrix.NewFromData(b.rows, b.cols, b.data, mopts...)
}

// readFields reads whitespace-separated rows line by line.
func (b *gridBuilder) readFields(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)

	var (
		lineNo int
		toks   []token
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		toks = splitFields(line, toks[:0])
		if err := b.addRow(lineNo, toks); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("gridio: read %s: %w", b.name, err)
	}

	return nil
}

// readCSV reads comma-separated rows with encoding/csv. Field positions come
// from csv.Reader.FieldPos, so quoted fields keep exact columns.
func (b *gridBuilder) readCSV(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1 // ragged rows are reported by addRow
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var toks []token
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return &MalformedGridError{
					File: b.name, Line: pe.Line, Column: pe.Column,
					Reason: pe.Err.Error(), Err: pe.Err,
				}
			}
			return fmt.Errorf("gridio: read %s: %w", b.name, err)
		}
		// Indented comments and whitespace-only lines.
		if first := strings.TrimSpace(rec[0]); (len(rec) == 1 && first == "") || strings.HasPrefix(first, "#") {
			continue
		}

		toks = toks[:0]
		line := 0
		for i, field := range rec {
			l, col := cr.FieldPos(i)
			if i == 0 {
				line = l
			}
			toks = append(toks, token{text: strings.TrimSpace(field), col: col})
		}
		if err := b.addRow(line, toks); err != nil {
			return err
		}
	}
}

// ReadFile opens path and reads a grid from it. FormatAuto is narrowed by
// the file extension first (see FormatForPath).
func ReadFile(path string, opts ...ReadOption) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridio: %w", err)
	}
	defer f.Close()

	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	if ff := FormatForPath(path, o.format); ff != o.format {
		opts = append(opts, WithFormat(ff))
	}

	return Read(f, path, opts...)
}

// parseValue converts one token. The location fields are filled by the caller.
func parseValue(s string, allowNonFinite bool) (float64, *MalformedGridError) {
	if s == "" {
		return 0, &MalformedGridError{Token: s, Reason: "empty value"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedGridError{Token: s, Reason: fmt.Sprintf("invalid number %q", s), Err: err}
	}
	if !allowNonFinite && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return 0, &MalformedGridError{Token: s, Reason: fmt.Sprintf("non-finite value %q", s), Err: matrix.ErrNaNInf}
	}

	return v, nil
}

// splitFields splits on runs of spaces and tabs.
func splitFields(line string, dst []token) []token {
	start := -1
	for i := 0; i < len(line); i++ {
		if c := line[i]; c == ' ' || c == '\t' || c == '\r' {
			if start >= 0 {
				dst = append(dst, token{text: line[start:i], col: start + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		dst = append(dst, token{text: line[start:], col: start + 1})
	}

	return dst
}
