package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PollInterval drives preview progress refresh.
const PollInterval = 100 * time.Millisecond

// Settings holds runtime configuration, loaded from the environment.
type Settings struct {
	FFmpegPath     string
	FFprobePath    string
	ConfigPath     string // persisted last-folder file
	LogFile        string
	LogLevel       string
	DefaultBitrate int
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// ProbePathFor derives the ffprobe binary that ships next to ffmpegPath.
func ProbePathFor(ffmpegPath string) string {
	dir, base := filepath.Split(ffmpegPath)
	return dir + strings.Replace(base, "ffmpeg", "ffprobe", 1)
}

// Load reads an optional .env file and then the environment.
// Existing environment variables are never overridden by .env.
func Load() Settings {
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = home
	}

	ffmpegPath := getEnv("WAVMERGE_FFMPEG", "ffmpeg")

	bitrate := getEnvInt("WAVMERGE_DEFAULT_BITRATE", DefaultBitrate)
	if !ValidBitrate(bitrate) {
		bitrate = DefaultBitrate
	}

	return Settings{
		FFmpegPath:     ffmpegPath,
		FFprobePath:    getEnv("WAVMERGE_FFPROBE", ProbePathFor(ffmpegPath)),
		ConfigPath:     getEnv("WAVMERGE_CONFIG", filepath.Join(home, ".wav_merger_config.json")),
		LogFile:        getEnv("WAVMERGE_LOG_FILE", filepath.Join(configDir, "WavMerger", "wavmerge.log")),
		LogLevel:       strings.ToLower(getEnv("WAVMERGE_LOG_LEVEL", "info")),
		DefaultBitrate: bitrate,
	}
}
