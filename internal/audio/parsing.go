package audio

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseProbeJSON fills the ffprobe-derived fields of m.
func parseProbeJSON(data []byte, m *Metadata) error {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to unmarshal ffprobe output: %w", err)
	}

	duration, err := probe.duration()
	if err != nil {
		return err
	}
	m.Duration = duration

	if probe.Format.BitRate != "" {
		m.Bitrate, _ = strconv.ParseInt(probe.Format.BitRate, 10, 64)
	}

	if len(probe.Streams) == 0 {
		return fmt.Errorf("no audio streams found in file")
	}
	s := probe.Streams[0]
	m.Codec = s.CodecName
	m.Channels = s.Channels
	m.ChannelLayout = s.ChannelLayout
	m.SampleRate, _ = strconv.Atoi(s.SampleRate)

	return nil
}

// parseProbeDuration reads only format.duration from ffprobe JSON.
func parseProbeDuration(data []byte) (float64, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("failed to unmarshal ffprobe output: %w", err)
	}
	return probe.duration()
}

func (p probeOutput) duration() (float64, error) {
	if p.Format.Duration == "" || p.Format.Duration == "N/A" {
		return 0, fmt.Errorf("duration not found in ffprobe output")
	}
	d, err := strconv.ParseFloat(p.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", p.Format.Duration, err)
	}
	return d, nil
}

// ParseAudioDescriptor returns the text after the first "Audio:" marker in
// ffmpeg's diagnostic dump, up to the end of that line.
func ParseAudioDescriptor(output string) string {
	idx := strings.Index(output, "Audio:")
	if idx == -1 {
		return ""
	}
	rest := output[idx+len("Audio:"):]
	if nl := strings.IndexAny(rest, "\r\n"); nl != -1 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}

// ParseSummary keeps the lines of an ffmpeg dump that describe duration and streams.
func ParseSummary(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "duration") || strings.Contains(lower, "audio:") || strings.Contains(lower, "stream") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

// FormatClock renders seconds as MM:SS, flooring both fields.
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatSize renders a byte count with two decimals.
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f TB", value)
}
