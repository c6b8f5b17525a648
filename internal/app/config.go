// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/lvfilter/filter2d"
	"github.com/katalvlaran/lvfilter/gridio"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("app: invalid config")

// Config holds everything a filter job needs.
type Config struct {
	Image   string
	Kernel  string
	Output  string
	Format  string // auto | whitespace | csv
	Mode    string // serial | parallel | separable | collective
	Workers int
	Heatmap string // optional image path

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns the values used when neither the job file nor a flag
// sets a field.
func DefaultConfig() Config {
	return Config{
		Format:    gridio.FormatAuto.String(),
		Mode:      filter2d.ModeParallel.String(),
		Workers:   runtime.GOMAXPROCS(0),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// hclConfig is the on-disk shape of a job file.
type hclConfig struct {
	Image   *string `hcl:"image,optional"`
	Kernel  *string `hcl:"kernel,optional"`
	Output  *string `hcl:"output,optional"`
	Format  *string `hcl:"format,optional"`
	Mode    *string `hcl:"mode,optional"`
	Workers *int    `hcl:"workers,optional"`
	Heatmap *string `hcl:"heatmap,optional"`
	Log     *hclLog `hcl:"log,block"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// LoadConfigFile parses an HCL job file on top of base. Attributes missing
// from the file keep base's values.
func LoadConfigFile(path string, base Config) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	return decodeConfig(file.Body, path, base)
}

// ParseConfig is LoadConfigFile over in-memory source; filename is used in
// diagnostics only.
func ParseConfig(src []byte, filename string, base Config) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	return decodeConfig(file.Body, filename, base)
}

func decodeConfig(body hcl.Body, filename string, base Config) (Config, error) {
	var raw hclConfig
	if diags := gohcl.DecodeBody(body, evalContext(filename), &raw); diags.HasErrors() {
		return base, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	cfg := base
	setString(&cfg.Image, raw.Image)
	setString(&cfg.Kernel, raw.Kernel)
	setString(&cfg.Output, raw.Output)
	setString(&cfg.Format, raw.Format)
	setString(&cfg.Mode, raw.Mode)
	setString(&cfg.Heatmap, raw.Heatmap)
	if raw.Workers != nil {
		cfg.Workers = *raw.Workers
	}
	if raw.Log != nil {
		setString(&cfg.LogLevel, raw.Log.Level)
		setString(&cfg.LogFormat, raw.Log.Format)
	}

	return cfg, nil
}

// evalContext exposes job_dir, the directory holding the job file, so paths
// can be written relative to it: image = "${job_dir}/image.txt".
func evalContext(filename string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"job_dir": cty.StringVal(filepath.Dir(filename)),
		},
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks enums and required paths. Output is required only when
// requireOutput is set (batch jobs name outputs themselves).
func (c Config) Validate(requireOutput bool) error {
	var errs []error
	if c.Kernel == "" {
		errs = append(errs, errors.New("kernel path is required"))
	}
	if requireOutput {
		if c.Image == "" {
			errs = append(errs, errors.New("image path is required"))
		}
		if c.Output == "" {
			errs = append(errs, errors.New("output path is required"))
		}
	}
	if _, err := gridio.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := filter2d.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}
