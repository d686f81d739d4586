package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `Guessed Channel Layout for Input Stream #0.0 : stereo
Input #0, wav, from 'take1.wav':
  Duration: 00:00:02.00, bitrate: 1411 kb/s
  Stream #0:0: Audio: pcm_s16le ([1][0][0][0] / 0x0001), 44100 Hz, stereo, s16, 1411 kb/s
At least one output file must be specified
`

func TestParseAudioDescriptor(t *testing.T) {
	assert.Equal(t,
		"pcm_s16le ([1][0][0][0] / 0x0001), 44100 Hz, stereo, s16, 1411 kb/s",
		ParseAudioDescriptor(sampleDump))
	assert.Equal(t, "", ParseAudioDescriptor("take1.wav: No such file or directory\n"))
	assert.Equal(t, "mp3, 48000 Hz, mono", ParseAudioDescriptor("Stream #0:0: Audio: mp3, 48000 Hz, mono\r\nStream #0:1: Audio: aac"))
}

func TestParseSummary(t *testing.T) {
	lines := ParseSummary(sampleDump)
	require.Len(t, lines, 3)
	assert.Equal(t, "Guessed Channel Layout for Input Stream #0.0 : stereo", lines[0])
	assert.Equal(t, "Duration: 00:00:02.00, bitrate: 1411 kb/s", lines[1])
	assert.Contains(t, lines[2], "Audio: pcm_s16le")
}

func TestParseProbeJSON(t *testing.T) {
	data := []byte(`{
  "programs": [],
  "streams": [{"codec_name": "pcm_s24le", "sample_rate": "48000", "channels": 6, "channel_layout": "5.1"}],
  "format": {"duration": "3.000000", "bit_rate": "6912000"}
}`)
	var m Metadata
	require.NoError(t, parseProbeJSON(data, &m))
	assert.Equal(t, 3.0, m.Duration)
	assert.Equal(t, 48000, m.SampleRate)
	assert.Equal(t, 6, m.Channels)
	assert.Equal(t, "5.1", m.ChannelLayout)
	assert.Equal(t, int64(6912000), m.Bitrate)
	assert.Equal(t, "pcm_s24le", m.Codec)
}

func TestParseProbeJSONErrors(t *testing.T) {
	var m Metadata
	assert.Error(t, parseProbeJSON([]byte(`garbage`), &m))
	assert.Error(t, parseProbeJSON([]byte(`{"format": {}}`), &m))
	assert.Error(t, parseProbeJSON([]byte(`{"format": {"duration": "1.5"}, "streams": []}`), &m))

	_, err := parseProbeDuration([]byte(`{"format": {"duration": "N/A"}}`))
	assert.Error(t, err)

	d, err := parseProbeDuration([]byte(`{"format": {"duration": "0.000000"}}`))
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{4.99, "00:04"},
		{59.999, "00:59"},
		{60, "01:00"},
		{605.5, "10:05"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.in), "FormatClock(%v)", tt.in)
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512.00 B", FormatSize(512))
	assert.Equal(t, "1.50 KB", FormatSize(1536))
	assert.Equal(t, "10.00 MB", FormatSize(10*1024*1024))
	assert.Equal(t, "2.00 TB", FormatSize(2*1024*1024*1024*1024))
}
