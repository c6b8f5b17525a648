// SPDX-License-Identifier: MIT

package gridio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/lvfilter/matrix"
)

// Write encodes m one row per line. FormatAuto writes whitespace-separated
// values. A grid with zero columns writes nothing.
func Write(w io.Writer, m *matrix.Dense, f Format) error {
	if m == nil {
		return fmt.Errorf("gridio: write: %w", matrix.ErrNilMatrix)
	}
	rows, cols := m.Shape()
	if cols == 0 {
		return nil
	}
	data := m.RawData()
	rec := make([]string, cols)

	if f == FormatCSV {
		cw := csv.NewWriter(w)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				rec[j] = strconv.FormatFloat(data[i*cols+j], 'g', -1, 64)
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("gridio: write: %w", err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("gridio: write: %w", err)
		}
		return nil
	}

	bw := bufio.NewWriter(w)
	var buf []byte
	for i := 0; i < rows; i++ {
		buf = buf[:0]
		for j := 0; j < cols; j++ {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, data[i*cols+j], 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("gridio: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("gridio: write: %w", err)
	}

	return nil
}

// WriteFile creates (or truncates) path and writes m to it. FormatAuto is
// narrowed by the file extension.
func WriteFile(path string, m *matrix.Dense, f Format) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gridio: %w", err)
	}
	defer func() {
		err = errors.Join(err, fh.Close())
	}()

	return Write(fh, m, FormatForPath(path, f))
}
