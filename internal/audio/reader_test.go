package audio

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fremen-fi/wavmerge/internal/ffmpeg"
)

// writeScript creates an executable shell script standing in for ffmpeg/ffprobe.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func fakeTools(t *testing.T, probeBody, ffmpegBody string) *ffmpeg.Runner {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}
	dir := t.TempDir()
	return ffmpeg.New(
		writeScript(t, dir, "ffmpeg", ffmpegBody),
		writeScript(t, dir, "ffprobe", probeBody),
	)
}

func TestReaderRead(t *testing.T) {
	runner := fakeTools(t,
		`echo '{"streams":[{"codec_name":"pcm_s16le","sample_rate":"44100","channels":2,"channel_layout":"stereo"}],"format":{"duration":"2.000000","bit_rate":"1411200"}}'`,
		"cat >&2 <<'DUMP'\n"+sampleDump+"DUMP\nexit 1\n",
	)
	wav := filepath.Join(t.TempDir(), "take1.wav")
	require.NoError(t, os.WriteFile(wav, make([]byte, 2048), 0644))

	m, err := NewReader(runner).Read(context.Background(), wav)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), m.Size)
	assert.Equal(t, 2.0, m.Duration)
	assert.Equal(t, 44100, m.SampleRate)
	assert.Equal(t, 2, m.Channels)
	assert.Equal(t, int64(1411200), m.Bitrate)
	assert.Contains(t, m.Descriptor, "44100 Hz, stereo")

	report := Report(m)
	assert.Contains(t, report, "File: take1.wav")
	assert.Contains(t, report, "Size: 2.00 KB")
	assert.Contains(t, report, "Duration: 00:02")
	assert.Contains(t, report, "Channels: 2 (stereo)")
	assert.Contains(t, report, "Bitrate: 1411 kbps")
}

func TestReaderMissingFile(t *testing.T) {
	runner := fakeTools(t, "exit 1", "exit 1")
	_, err := NewReader(runner).Read(context.Background(), filepath.Join(t.TempDir(), "nope.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReaderDurationProbeFailure(t *testing.T) {
	runner := fakeTools(t, "echo 'Invalid data found when processing input' >&2\nexit 1", "exit 1")
	_, err := NewReader(runner).Duration(context.Background(), "corrupt.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data found")
}

func TestReaderSummary(t *testing.T) {
	runner := fakeTools(t, "exit 0", "cat >&2 <<'DUMP'\n"+sampleDump+"DUMP\nexit 1\n")
	lines, err := NewReader(runner).Summary(context.Background(), "out.wav")
	require.NoError(t, err)
	assert.Len(t, lines, 3)
}
