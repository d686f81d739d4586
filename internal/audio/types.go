package audio

// Metadata holds the technical properties shown for a source or output file.
type Metadata struct {
	Path          string
	Size          int64   // bytes
	Duration      float64 // seconds
	SampleRate    int     // Hz
	Channels      int
	ChannelLayout string // e.g. "stereo", empty when ffprobe reports none
	Bitrate       int64  // bits per second
	Codec         string
	// Descriptor is the text following "Audio:" in ffmpeg's stream dump,
	// e.g. "pcm_s16le ([1][0][0][0] / 0x0001), 44100 Hz, 2 channels, s16, 1411 kb/s".
	Descriptor string
}

// probeOutput mirrors the subset of `ffprobe -of json` used here.
type probeOutput struct {
	Streams []struct {
		CodecName     string `json:"codec_name"`
		SampleRate    string `json:"sample_rate"`
		Channels      int    `json:"channels"`
		ChannelLayout string `json:"channel_layout"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
}
