// Package merge concatenates audio files into one output with ffmpeg's concat
// demuxer and reports progress while it runs.
package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fremen-fi/wavmerge/internal/audio"
	"github.com/fremen-fi/wavmerge/internal/config"
	"github.com/fremen-fi/wavmerge/internal/ffmpeg"
	"github.com/fremen-fi/wavmerge/internal/logging"
)

// Inspector reads what the orchestrator needs to know about inputs and output.
type Inspector interface {
	Duration(ctx context.Context, path string) (float64, error)
	Read(ctx context.Context, path string) (audio.Metadata, error)
	Summary(ctx context.Context, path string) ([]string, error)
}

// Result describes a finished merge. A failure to inspect the output is kept
// in MetadataErr; the merge itself still succeeded.
type Result struct {
	JobID       string
	Output      string
	Metadata    audio.Metadata
	Summary     []string
	MetadataErr error
}

// Orchestrator runs merge jobs. One job may run at a time per caller; the
// orchestrator keeps no state between jobs.
type Orchestrator struct {
	runner    *ffmpeg.Runner
	inspector Inspector
}

// New returns an Orchestrator that runs runner's ffmpeg.
func New(runner *ffmpeg.Runner, inspector Inspector) *Orchestrator {
	return &Orchestrator{runner: runner, inspector: inspector}
}

// Merge concatenates files in order into outputPath. onProgress receives
// ratios in [0, 1] on the calling goroutine; it ends with 1 on success and 0
// on failure.
func (o *Orchestrator) Merge(ctx context.Context, files []string, format config.OutputFormat, outputPath string, onProgress func(float64)) (Result, error) {
	if len(files) == 0 {
		return Result{}, ErrNoFiles
	}
	files = slices.Clone(files)
	jobID := uuid.NewString()

	total, err := o.totalDuration(ctx, files)
	if err != nil {
		return Result{JobID: jobID}, err
	}

	manifest, err := writeManifest(files)
	if err != nil {
		return Result{JobID: jobID}, err
	}
	defer removeManifest(manifest)

	logging.Info("merge started",
		logging.String("job", jobID),
		logging.Int("files", len(files)),
		logging.String("format", format.String()),
		logging.String("output", outputPath),
		logging.Float64("total_seconds", total),
	)
	start := time.Now()

	progress := newProgressTracker(total, onProgress)
	if err := o.run(ctx, manifest, format, outputPath, progress); err != nil {
		progress.finish(false)
		logging.Error("merge failed", logging.String("job", jobID), logging.ErrorField(err))
		return Result{JobID: jobID}, err
	}
	progress.finish(true)

	logging.Info("merge finished",
		logging.String("job", jobID),
		logging.Duration("elapsed", time.Since(start)),
	)

	res := Result{JobID: jobID, Output: outputPath}
	res.Metadata, res.MetadataErr = o.inspector.Read(ctx, outputPath)
	if res.MetadataErr == nil {
		res.Summary, res.MetadataErr = o.inspector.Summary(ctx, outputPath)
	}
	if res.MetadataErr != nil {
		logging.Warn("reading merged output", logging.String("job", jobID), logging.ErrorField(res.MetadataErr))
	}
	return res, nil
}

// Args returns the ffmpeg arguments for merging manifest into outputPath.
func Args(manifest string, format config.OutputFormat, outputPath string) []string {
	args := []string{
		"-hide_banner",
		"-nostats",
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
	}
	args = append(args, format.CodecArgs()...)
	return append(args, "-progress", "pipe:1", outputPath)
}

func (o *Orchestrator) totalDuration(ctx context.Context, files []string) (float64, error) {
	var total float64
	for _, f := range files {
		d, err := o.inspector.Duration(ctx, f)
		if err != nil {
			return 0, &DurationUnavailableError{Path: f, Err: err}
		}
		total += d
	}
	return total, nil
}

func (o *Orchestrator) run(ctx context.Context, manifest string, format config.OutputFormat, outputPath string, progress *progressTracker) error {
	cmd := o.runner.Command(ctx, Args(manifest, format, outputPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}

	if err := progress.consume(stdout); err != nil {
		logging.Warn("reading ffmpeg progress", logging.ErrorField(err))
		_, _ = io.Copy(io.Discard, stdout)
	}

	err = cmd.Wait()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("merge cancelled: %w", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{ExitCode: exitErr.ExitCode(), Diagnostic: stderr.String()}
	}
	return err
}
