package config

import (
	"fmt"
	"strconv"
	"strings"
)

// CodecMap maps UI format names to FFmpeg encoder names.
// "copy" means the concat demuxer output is stream-copied without re-encoding.
var CodecMap = map[string]string{
	"WAV": "copy",
	"MP3": "libmp3lame",
}

// Bitrates are the MP3 bitrates (kbps) offered for lossy output.
var Bitrates = []int{128, 192, 256, 320}

// DefaultBitrate is used when nothing valid was configured.
const DefaultBitrate = 192

// GetCodec returns the FFmpeg encoder name for a given UI format name
func GetCodec(uiName string) string {
	if codec, ok := CodecMap[uiName]; ok {
		return codec
	}
	return uiName
}

// ValidBitrate reports whether kbps is one of Bitrates.
func ValidBitrate(kbps int) bool {
	for _, b := range Bitrates {
		if b == kbps {
			return true
		}
	}
	return false
}

// BitrateLabels returns Bitrates as strings for select widgets.
func BitrateLabels() []string {
	labels := make([]string, len(Bitrates))
	for i, b := range Bitrates {
		labels[i] = strconv.Itoa(b)
	}
	return labels
}

// OutputFormat selects lossless stream copy or lossy MP3 at Bitrate kbps.
type OutputFormat struct {
	Lossy   bool
	Bitrate int
}

// Lossless returns the stream-copy format.
func Lossless() OutputFormat {
	return OutputFormat{}
}

// Lossy returns MP3 output at kbps. Callers are expected to pass one of Bitrates.
func Lossy(kbps int) OutputFormat {
	return OutputFormat{Lossy: true, Bitrate: kbps}
}

// ParseFormat turns a UI/CLI name ("wav", "mp3") and bitrate into an OutputFormat.
func ParseFormat(name string, kbps int) (OutputFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "WAV":
		return Lossless(), nil
	case "MP3":
		if !ValidBitrate(kbps) {
			return OutputFormat{}, fmt.Errorf("unsupported MP3 bitrate %d kbps (want one of %v)", kbps, Bitrates)
		}
		return Lossy(kbps), nil
	default:
		return OutputFormat{}, fmt.Errorf("unknown output format %q", name)
	}
}

// Name is the UI name of the format.
func (f OutputFormat) Name() string {
	if f.Lossy {
		return "MP3"
	}
	return "WAV"
}

// Extension is the output file extension implied by the format.
func (f OutputFormat) Extension() string {
	if f.Lossy {
		return ".mp3"
	}
	return ".wav"
}

// CodecArgs are the FFmpeg output codec arguments for the format.
func (f OutputFormat) CodecArgs() []string {
	codec := GetCodec(f.Name())
	if !f.Lossy {
		return []string{"-c", codec}
	}
	return []string{"-c:a", codec, "-b:a", fmt.Sprintf("%dk", f.Bitrate)}
}

func (f OutputFormat) String() string {
	if f.Lossy {
		return fmt.Sprintf("MP3 %d kbps", f.Bitrate)
	}
	return "WAV (lossless)"
}
