// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/gridio"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func fixture(t *testing.T) (dir, image, kernel string) {
	t.Helper()
	dir = t.TempDir()
	image = filepath.Join(dir, "image.txt")
	kernel = filepath.Join(dir, "kernel.txt")
	writeFile(t, image, "1 1 1 1 1\n1 1 1 1 1\n1 1 1 1 1\n1 1 1 1 1\n1 1 1 1 1\n")
	writeFile(t, kernel, "1 1 1\n1 1 1\n1 1 1\n")
	return dir, image, kernel
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, "correlate [image kernel result]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for name, short := range map[string]string{"config": "c", "mode": "m", "workers": "w"} {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, short, f.Shorthand)
	}
	require.NotNil(t, cmd.Flags().Lookup("heatmap"))
}

func TestRun_Positional(t *testing.T) {
	dir, image, kernel := fixture(t)
	out := filepath.Join(dir, "result.txt")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"-m", "serial", image, kernel, out})
	require.NoError(t, err, stderr.String())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "0 0 0 0 0\n0 9 9 9 0\n0 9 9 9 0\n0 9 9 9 0\n0 0 0 0 0\n", string(raw))
}

func TestRun_ConfigFileWithOverride(t *testing.T) {
	dir, image, kernel := fixture(t)
	out := filepath.Join(dir, "result.csv")
	job := filepath.Join(dir, "job.hcl")
	writeFile(t, job, `
image   = "`+image+`"
kernel  = "`+kernel+`"
output  = "`+out+`"
mode    = "gpu"
workers = 2
`)

	// The file's invalid mode is overridden on the command line.
	var stderr bytes.Buffer
	err := run(context.Background(), &bytes.Buffer{}, &stderr, []string{"-c", job, "--mode", "collective", "--log-level", "debug"})
	require.NoError(t, err)
	require.Contains(t, stderr.String(), "Configuration resolved.")

	got, err := gridio.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, 9.0, got.RawData()[12])
}

func TestRun_ExitCodes(t *testing.T) {
	dir, image, kernel := fixture(t)
	bad := filepath.Join(dir, "bad.txt")
	writeFile(t, bad, "1 2 3\n4 five 6\n")
	out := filepath.Join(dir, "r.txt")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"NoArgs", nil, 2},
		{"TwoArgs", []string{image, kernel}, 2},
		{"UnknownFlag", []string{"--nope", image, kernel, out}, 2},
		{"BadMode", []string{"-m", "gpu", image, kernel, out}, 2},
		{"BadWorkers", []string{"-w", "0", image, kernel, out}, 2},
		{"MissingConfig", []string{"-c", filepath.Join(dir, "none.hcl")}, 2},
		{"MalformedImage", []string{bad, kernel, out}, 1},
		{"MissingImage", []string{filepath.Join(dir, "none.txt"), kernel, out}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, tc.args)
			require.Error(t, err)
			require.Equal(t, tc.code, exitCode(err), err.Error())
		})
	}
}

func TestRun_MalformedReportsLocation(t *testing.T) {
	dir, _, kernel := fixture(t)
	bad := filepath.Join(dir, "bad.txt")
	writeFile(t, bad, "1 2 3\n4 five 6\n")

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{bad, kernel, filepath.Join(dir, "r.txt")})
	require.ErrorIs(t, err, gridio.ErrMalformedGrid)
	require.Equal(t, bad+":2:3: invalid number \"five\"", err.Error())
}

func TestBatch(t *testing.T) {
	dir, image, kernel := fixture(t)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))
	second := filepath.Join(dir, "second.txt")
	raw, err := os.ReadFile(image)
	require.NoError(t, err)
	writeFile(t, second, string(raw))

	err = run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{},
		[]string{"batch", "-k", kernel, "-o", outDir, "-w", "2", image, second})
	require.NoError(t, err)
	for _, name := range []string{"image.txt", "second.txt"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err)
	}

	err = run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"batch", "-k", kernel, image})
	require.Equal(t, 2, exitCode(err))
	err = run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"batch", "-k", kernel, "-o", outDir})
	require.Equal(t, 2, exitCode(err))
	// Same base name in two directories would overwrite one result.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "again"), 0o755))
	clash := filepath.Join(dir, "again", "image.txt")
	writeFile(t, clash, string(raw))
	err = run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{},
		[]string{"batch", "-k", kernel, "-o", outDir, image, clash})
	require.Equal(t, 2, exitCode(err))
}
