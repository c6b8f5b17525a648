// SPDX-License-Identifier: MIT

// Package gridio reads and writes 2-D numeric grids as plain text.
//
// Format:
//
//   - One grid row per line.
//   - Values separated by commas (CSV) or by runs of spaces/tabs.
//   - Blank lines and lines starting with '#' are skipped.
//   - FormatAuto picks CSV when the first data line contains a comma.
//
// Every parse failure is a *MalformedGridError that names the file, line
// and column of the offending token. Values are written with the shortest
// representation that round-trips exactly.
package gridio
