package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fremen-fi/wavmerge/internal/ffmpeg"
	"github.com/fremen-fi/wavmerge/internal/logging"
)

// Reader inspects audio files through ffprobe and ffmpeg.
type Reader struct {
	runner *ffmpeg.Runner
}

// NewReader creates a Reader using runner's binaries.
func NewReader(runner *ffmpeg.Runner) *Reader {
	return &Reader{runner: runner}
}

// Read gathers size, stream properties and the ffmpeg stream descriptor for path.
func (r *Reader) Read(ctx context.Context, path string) (Metadata, error) {
	m := Metadata{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return m, err
	}
	m.Size = info.Size()

	out, err := r.runner.Probe(ctx,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "format=duration,bit_rate:stream=codec_name,sample_rate,channels,channel_layout",
		"-of", "json",
		path,
	)
	if err != nil {
		return m, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := parseProbeJSON(out, &m); err != nil {
		return m, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	dump, err := r.dump(ctx, path)
	if err != nil {
		logging.Warn("ffmpeg stream dump failed", logging.String("path", path), logging.ErrorField(err))
	}
	m.Descriptor = ParseAudioDescriptor(dump)

	return m, nil
}

// Duration returns the duration of path in seconds.
func (r *Reader) Duration(ctx context.Context, path string) (float64, error) {
	out, err := r.runner.Probe(ctx,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return 0, err
	}

	d, err := parseProbeDuration(out)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// Summary returns the duration and stream lines of ffmpeg's dump for path.
func (r *Reader) Summary(ctx context.Context, path string) ([]string, error) {
	dump, err := r.dump(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseSummary(dump), nil
}

// dump runs `ffmpeg -i path`. Without an output file ffmpeg always exits
// non-zero, so only a missing binary or empty output counts as failure.
func (r *Reader) dump(ctx context.Context, path string) (string, error) {
	cmd := r.runner.Command(ctx, "-hide_banner", "-i", path)
	output, err := cmd.CombinedOutput()
	if len(output) == 0 && err != nil {
		return "", err
	}
	return string(output), nil
}

// Report renders m the way the properties panel shows it.
func Report(m Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n\n", filepath.Base(m.Path))
	fmt.Fprintf(&b, "Size: %s\n\n", FormatSize(m.Size))
	fmt.Fprintf(&b, "Duration: %s\n\n", FormatClock(m.Duration))
	if m.Descriptor != "" {
		fmt.Fprintf(&b, "Audio:\n%s\n\n", m.Descriptor)
	}
	fmt.Fprintf(&b, "Sample rate: %d Hz\n", m.SampleRate)
	if m.ChannelLayout != "" {
		fmt.Fprintf(&b, "Channels: %d (%s)\n", m.Channels, m.ChannelLayout)
	} else {
		fmt.Fprintf(&b, "Channels: %d\n", m.Channels)
	}
	fmt.Fprintf(&b, "Bitrate: %d kbps\n", m.Bitrate/1000)
	return b.String()
}
