package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fremen-fi/wavmerge/internal/logging"
	"github.com/fremen-fi/wavmerge/platform"
)

// Runner locates the pre-installed ffmpeg and ffprobe binaries.
type Runner struct {
	FFmpeg  string
	FFprobe string
}

// New returns a Runner for the given binaries. Empty names fall back to $PATH lookups.
func New(ffmpegPath, ffprobePath string) *Runner {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Runner{FFmpeg: ffmpegPath, FFprobe: ffprobePath}
}

// Check verifies that both binaries can be found.
func (r *Runner) Check() error {
	if _, err := exec.LookPath(r.FFmpeg); err != nil {
		return fmt.Errorf("ffmpeg binary not found: %w", err)
	}
	if _, err := exec.LookPath(r.FFprobe); err != nil {
		return fmt.Errorf("ffprobe binary not found: %w", err)
	}
	return nil
}

// Command creates an exec.Cmd for FFmpeg with the given arguments
// It automatically applies platform-specific settings (like hiding console on Windows)
func (r *Runner) Command(ctx context.Context, args ...string) *exec.Cmd {
	logging.Debug("ffmpeg command", logging.String("bin", r.FFmpeg), logging.String("args", strings.Join(args, " ")))
	cmd := exec.CommandContext(ctx, r.FFmpeg, args...)
	platform.HideWindow(cmd)
	return cmd
}

// ProbeCommand is Command for ffprobe.
func (r *Runner) ProbeCommand(ctx context.Context, args ...string) *exec.Cmd {
	logging.Debug("ffprobe command", logging.String("bin", r.FFprobe), logging.String("args", strings.Join(args, " ")))
	cmd := exec.CommandContext(ctx, r.FFprobe, args...)
	platform.HideWindow(cmd)
	return cmd
}

// Run executes FFmpeg with the given arguments and returns combined output
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	return r.Command(ctx, args...).CombinedOutput()
}

// Probe runs ffprobe and returns stdout. On failure the error carries stderr.
func (r *Runner) Probe(ctx context.Context, args ...string) ([]byte, error) {
	cmd := r.ProbeCommand(ctx, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
