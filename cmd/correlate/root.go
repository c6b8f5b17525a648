// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvfilter/internal/app"
	"github.com/katalvlaran/lvfilter/internal/ctxlog"
)

// commonFlags are shared by the root command and batch.
type commonFlags struct {
	config    string
	format    string
	mode      string
	workers   int
	logLevel  string
	logFormat string
}

func (f *commonFlags) register(fs *pflag.FlagSet, def app.Config) {
	fs.StringVarP(&f.config, "config", "c", "", "HCL job file; flags override its values")
	fs.StringVar(&f.format, "format", def.Format, "Grid file format: auto, whitespace, csv")
	fs.StringVarP(&f.mode, "mode", "m", def.Mode, "Execution mode: serial, parallel, separable, collective")
	fs.IntVarP(&f.workers, "workers", "w", def.Workers, "Bands, ranks or batch jobs running at once")
	fs.StringVar(&f.logLevel, "log-level", def.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", def.LogFormat, "Log format: text or json")
}

// resolve layers defaults, the job file and explicitly set flags, in that order.
func (f *commonFlags) resolve(fs *pflag.FlagSet) (app.Config, error) {
	cfg := app.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = app.LoadConfigFile(f.config, cfg); err != nil {
			return cfg, usageError(err)
		}
	}

	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("mode") {
		cfg.Mode = f.mode
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}

	return cfg, nil
}

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	var (
		flags   commonFlags
		heatmap string
	)

	cmd := &cobra.Command{
		Use:   "correlate [image kernel result]",
		Short: "Convolve a 2-D grid with a kernel",
		Long: `correlate reads an image grid and a kernel grid (whitespace- or
comma-separated text), convolves them over the valid-overlap region and
writes a result grid of the image's shape with a zero border.

Paths may come from positional arguments or from an HCL job file (-c).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return usageError(fmt.Errorf("expected 3 arguments (image kernel result), got %d", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) == 3 {
				cfg.Image, cfg.Kernel, cfg.Output = args[0], args[1], args[2]
			}
			if cmd.Flags().Changed("heatmap") {
				cfg.Heatmap = heatmap
			}
			if err := cfg.Validate(true); err != nil {
				return usageError(err)
			}

			logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, errW)
			logger.Debug("Configuration resolved.", "config", cfg)

			return app.Run(ctxlog.WithLogger(cmd.Context(), logger), cfg)
		},
	}
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	def := app.DefaultConfig()
	flags.register(cmd.Flags(), def)
	cmd.Flags().StringVar(&heatmap, "heatmap", "", "Also render the result as an image (png, svg, pdf)")

	cmd.AddCommand(newBatchCmd(errW))

	return cmd
}

func newBatchCmd(errW io.Writer) *cobra.Command {
	var (
		flags  commonFlags
		kernel string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "batch image...",
		Short: "Convolve many images with one kernel concurrently",
		Long: `batch applies the same kernel to every image, running up to --workers
images at once. Each result is written to --out under the image's file name.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(errors.New("batch needs at least one image"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("kernel") {
				cfg.Kernel = kernel
			}
			if outDir == "" {
				return usageError(errors.New("--out is required"))
			}
			if err := cfg.Validate(false); err != nil {
				return usageError(err)
			}

			logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, errW)

			err = app.RunBatch(ctxlog.WithLogger(cmd.Context(), logger), cfg, args, outDir)
			if errors.Is(err, app.ErrDuplicateOutput) {
				return usageError(err)
			}

			return err
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags.register(cmd.Flags(), app.DefaultConfig())
	cmd.Flags().StringVarP(&kernel, "kernel", "k", "", "Kernel grid file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for result grids")

	return cmd
}
