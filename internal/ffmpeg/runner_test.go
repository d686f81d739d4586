package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are shell scripts")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestNewDefaults(t *testing.T) {
	r := New("", "")
	assert.Equal(t, "ffmpeg", r.FFmpeg)
	assert.Equal(t, "ffprobe", r.FFprobe)
}

func TestCheckMissingBinary(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "no-ffmpeg"), "ffprobe")
	err := r.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg binary not found")
}

func TestProbeReturnsStdout(t *testing.T) {
	probe := script(t, "ffprobe", `echo '{"format":{}}'; echo noise >&2`)
	out, err := New("ffmpeg", probe).Probe(context.Background(), "-of", "json", "x.wav")
	require.NoError(t, err)
	assert.Equal(t, "{\"format\":{}}\n", string(out))
}

func TestProbeFailureCarriesStderr(t *testing.T) {
	probe := script(t, "ffprobe", "echo 'x.wav: No such file or directory' >&2\nexit 1\n")
	_, err := New("ffmpeg", probe).Probe(context.Background(), "x.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffprobe failed")
	assert.Contains(t, err.Error(), "No such file or directory")
}

func TestRunCombinesOutput(t *testing.T) {
	ff := script(t, "ffmpeg", "echo out; echo err >&2\n")
	out, err := New(ff, "").Run(context.Background(), "-version")
	require.NoError(t, err)
	assert.Contains(t, string(out), "out")
	assert.Contains(t, string(out), "err")
}
