package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "cfg.json"))

	require.NoError(t, s.Save(Config{LastFolder: "/music/takes"}))

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "/music/takes", cfg.LastFolder)
}

func TestStoreMissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.json"))

	cfg, err := s.Load()
	assert.Error(t, err)
	assert.Equal(t, Config{}, cfg)
	assert.Equal(t, "/home/me", cfg.LastFolderOr("/home/me"))
}

func TestStoreCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cfg, err := NewStore(path).Load()
	assert.Error(t, err)
	assert.Empty(t, cfg.LastFolder)
}

func TestStoreUsesLegacyKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"last_folder": "C:\\rec"}`), 0644))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, `C:\rec`, cfg.LastFolderOr("x"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("wav", 0)
	require.NoError(t, err)
	assert.False(t, f.Lossy)
	assert.Equal(t, ".wav", f.Extension())
	assert.Equal(t, []string{"-c", "copy"}, f.CodecArgs())

	f, err = ParseFormat("MP3", 256)
	require.NoError(t, err)
	assert.True(t, f.Lossy)
	assert.Equal(t, ".mp3", f.Extension())
	assert.Equal(t, []string{"-c:a", "libmp3lame", "-b:a", "256k"}, f.CodecArgs())

	_, err = ParseFormat("mp3", 200)
	assert.Error(t, err)

	_, err = ParseFormat("ogg", 192)
	assert.Error(t, err)
}

func TestBitrateLabels(t *testing.T) {
	assert.Equal(t, []string{"128", "192", "256", "320"}, BitrateLabels())
	assert.True(t, ValidBitrate(320))
	assert.False(t, ValidBitrate(160))
}

func TestProbePathFor(t *testing.T) {
	assert.Equal(t, "ffprobe", ProbePathFor("ffmpeg"))
	assert.Equal(t, "/opt/ffmpeg/bin/ffprobe", ProbePathFor("/opt/ffmpeg/bin/ffmpeg"))
	assert.Equal(t, "ffprobe.exe", ProbePathFor("ffmpeg.exe"))
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"WAVMERGE_FFMPEG", "WAVMERGE_FFPROBE", "WAVMERGE_CONFIG", "WAVMERGE_LOG_FILE", "WAVMERGE_LOG_LEVEL", "WAVMERGE_DEFAULT_BITRATE"} {
		t.Setenv(k, "")
	}

	s := Load()
	assert.Equal(t, "ffmpeg", s.FFmpegPath)
	assert.Equal(t, "ffprobe", s.FFprobePath)
	assert.Equal(t, ".wav_merger_config.json", filepath.Base(s.ConfigPath))
	assert.Equal(t, "wavmerge.log", filepath.Base(s.LogFile))
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, DefaultBitrate, s.DefaultBitrate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WAVMERGE_FFMPEG", "/usr/local/bin/ffmpeg")
	t.Setenv("WAVMERGE_FFPROBE", "")
	t.Setenv("WAVMERGE_LOG_LEVEL", "DEBUG")
	t.Setenv("WAVMERGE_DEFAULT_BITRATE", "320")

	s := Load()
	assert.Equal(t, "/usr/local/bin/ffprobe", s.FFprobePath)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 320, s.DefaultBitrate)

	t.Setenv("WAVMERGE_DEFAULT_BITRATE", "999")
	assert.Equal(t, DefaultBitrate, Load().DefaultBitrate)
}
