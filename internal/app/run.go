// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/katalvlaran/lvfilter/filter2d"
	"github.com/katalvlaran/lvfilter/gridio"
	"github.com/katalvlaran/lvfilter/heatmap"
	"github.com/katalvlaran/lvfilter/internal/ctxlog"
	"github.com/katalvlaran/lvfilter/matrix"
	"github.com/katalvlaran/lvfilter/workerpool"
)

// ErrDuplicateOutput reports two batch images that would write the same
// result file.
var ErrDuplicateOutput = errors.New("app: images share an output file")

// job is a resolved Config: parsed enums, ready to run.
type job struct {
	cfg    Config
	format gridio.Format
	mode   filter2d.Mode
}

func newJob(cfg Config) (job, error) {
	format, err := gridio.ParseFormat(cfg.Format)
	if err != nil {
		return job{}, err
	}
	mode, err := filter2d.ParseMode(cfg.Mode)
	if err != nil {
		return job{}, err
	}

	return job{cfg: cfg, format: format, mode: mode}, nil
}

// Run executes one filter job: read image and kernel, convolve, write the
// result and, when configured, its heatmap. The logger is taken from ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := ctxlog.FromContext(ctx)
	if err := cfg.Validate(true); err != nil {
		return err
	}
	j, err := newJob(cfg)
	if err != nil {
		return err
	}

	kernel, err := gridio.ReadFile(cfg.Kernel, gridio.WithFormat(j.format))
	if err != nil {
		return err
	}
	logger.Debug("Kernel loaded.", "path", cfg.Kernel, "rows", kernel.Rows(), "cols", kernel.Cols())

	return j.process(ctx, cfg.Image, kernel, cfg.Output, cfg.Heatmap, cfg.Workers)
}

// RunBatch convolves every image with the same kernel. Images are processed
// concurrently on a pool of cfg.Workers; each job runs its own variant with
// a single worker. Results go to outDir under the image's base name.
// The first failing image (in argument order) is reported. Images whose base
// names collide are rejected before anything is read.
func RunBatch(ctx context.Context, cfg Config, images []string, outDir string) error {
	logger := ctxlog.FromContext(ctx)
	if err := cfg.Validate(false); err != nil {
		return err
	}
	j, err := newJob(cfg)
	if err != nil {
		return err
	}
	outputs, err := batchOutputs(images, outDir)
	if err != nil {
		return err
	}

	kernel, err := gridio.ReadFile(cfg.Kernel, gridio.WithFormat(j.format))
	if err != nil {
		return err
	}

	logger.Info("Starting batch.", "images", len(images), "workers", cfg.Workers, "mode", j.mode.String())
	start := time.Now()
	_, err = workerpool.Map(ctx, cfg.Workers, outputs, func(ctx context.Context, o batchOutput) (struct{}, error) {
		return struct{}{}, j.process(ctx, o.image, kernel, o.path, "", 1)
	})
	if err != nil {
		return err
	}
	logger.Info("Batch finished.", "images", len(images), "elapsed", time.Since(start))

	return nil
}

type batchOutput struct {
	image, path string
}

// batchOutputs maps every image to outDir/<base name>.
// Errors: ErrDuplicateOutput (also ErrInvalidConfig) naming both images.
func batchOutputs(images []string, outDir string) ([]batchOutput, error) {
	out := make([]batchOutput, len(images))
	seen := make(map[string]string, len(images))
	for i, image := range images {
		path := filepath.Join(outDir, filepath.Base(image))
		if prev, ok := seen[path]; ok {
			return nil, fmt.Errorf("%w: %w: %s and %s both write %s",
				ErrInvalidConfig, ErrDuplicateOutput, prev, image, path)
		}
		seen[path] = image
		out[i] = batchOutput{image: image, path: path}
	}

	return out, nil
}

// process runs one image through the configured variant.
func (j job) process(ctx context.Context, imagePath string, kernel *matrix.Dense, outPath, heatmapPath string, workers int) error {
	logger := ctxlog.FromContext(ctx).With("image", imagePath)

	image, err := gridio.ReadFile(imagePath, gridio.WithFormat(j.format))
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := filter2d.Run(ctx, j.mode, image, kernel,
		filter2d.WithWorkers(workers), filter2d.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("convolve %s: %w", imagePath, err)
	}
	elapsed := time.Since(start)
	if sum, err := matrix.Summarize(result); err == nil {
		logger.Debug("Convolution finished.", "mode", j.mode.String(), "rows", sum.Rows, "cols", sum.Cols,
			"min", sum.Min, "max", sum.Max, "nonzero", sum.NonZero, "elapsed", elapsed)
	}

	if err := gridio.WriteFile(outPath, result, j.format); err != nil {
		return err
	}
	logger.Info("Result written.", "path", outPath)

	if heatmapPath != "" {
		if err := heatmap.Render(result, heatmapPath, heatmap.WithTitle(filepath.Base(outPath))); err != nil {
			return err
		}
		logger.Info("Heatmap written.", "path", heatmapPath)
	}

	return nil
}
