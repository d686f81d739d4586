package preview

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/fremen-fi/wavmerge/internal/audio"
	"github.com/fremen-fi/wavmerge/internal/ffmpeg"
	"github.com/fremen-fi/wavmerge/internal/logging"
)

const (
	framesPerBuffer = 1024
	// decoded buffers queued ahead of the audio callback
	queueDepth = 32

	defaultSampleRate = 44100
	maxChannels       = 2
)

// Initialize starts the audio subsystem. Call once at startup.
func Initialize() error {
	return portaudio.Initialize()
}

// Terminate shuts the audio subsystem down.
func Terminate() error {
	return portaudio.Terminate()
}

// StreamReader reports the sample rate and channel count of a file.
type StreamReader interface {
	Read(ctx context.Context, path string) (audio.Metadata, error)
}

// PortAudioPlayer decodes with ffmpeg into 16-bit PCM and plays the samples on
// the default output device.
type PortAudioPlayer struct {
	runner *ffmpeg.Runner
	probe  StreamReader

	mu         sync.Mutex
	path       string
	sampleRate int
	channels   int
	current    *session
}

// session is one Play call: a decoder process feeding one output stream.
type session struct {
	cancel  context.CancelFunc
	decoder *exec.Cmd
	stream  *portaudio.Stream
	frames  chan []int16
	pending []int16

	channels int
	played   atomic.Int64 // frames handed to the device
	drained  atomic.Bool
	paused   atomic.Bool
	done     chan struct{}
}

// NewPortAudioPlayer returns a player that decodes through runner.
func NewPortAudioPlayer(runner *ffmpeg.Runner, probe StreamReader) *PortAudioPlayer {
	return &PortAudioPlayer{runner: runner, probe: probe}
}

// Load remembers path and its stream layout. Playback starts with Play.
// Reloading the current file skips the probe.
func (p *PortAudioPlayer) Load(path string) error {
	p.Stop()

	p.mu.Lock()
	loaded := p.path == path && p.sampleRate > 0
	p.mu.Unlock()
	if loaded {
		return nil
	}

	m, err := p.probe.Read(context.Background(), path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = path
	p.sampleRate = m.SampleRate
	if p.sampleRate <= 0 {
		p.sampleRate = defaultSampleRate
	}
	// anything wider than stereo is downmixed by ffmpeg
	p.channels = m.Channels
	if p.channels <= 0 || p.channels > maxChannels {
		p.channels = maxChannels
	}
	return nil
}

// Play starts decoding the loaded file at offset seconds.
func (p *PortAudioPlayer) Play(offset float64) error {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == "" {
		return errors.New("no file loaded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := p.runner.Command(ctx,
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(offset, 'f', 3, 64),
		"-i", p.path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", strconv.Itoa(p.channels),
		"-ar", strconv.Itoa(p.sampleRate),
		"pipe:1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("starting decoder: %w", err)
	}

	s := &session{
		cancel:   cancel,
		decoder:  cmd,
		frames:   make(chan []int16, queueDepth),
		channels: p.channels,
		done:     make(chan struct{}),
	}
	go s.decode(ctx, stdout)

	stream, err := portaudio.OpenDefaultStream(0, p.channels, float64(p.sampleRate), framesPerBuffer, s.fill)
	if err != nil {
		s.shutdown()
		return fmt.Errorf("opening output stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		s.shutdown()
		return fmt.Errorf("starting output stream: %w", err)
	}

	p.current = s
	logging.Debug("audio output started", logging.String("path", p.path), logging.Float64("offset", offset))
	return nil
}

// Pause stops the output stream; the position is kept.
func (p *PortAudioPlayer) Pause() {
	p.mu.Lock()
	s := p.current
	p.mu.Unlock()
	if s == nil || s.paused.Load() {
		return
	}
	if err := s.stream.Stop(); err != nil {
		logging.Warn("pausing output stream", logging.ErrorField(err))
	}
	s.paused.Store(true)
}

// Stop ends playback and kills the decoder.
func (p *PortAudioPlayer) Stop() {
	p.mu.Lock()
	s := p.current
	p.current = nil
	p.mu.Unlock()
	if s != nil {
		s.shutdown()
	}
}

// Busy reports whether audio is still flowing to the device.
func (p *PortAudioPlayer) Busy() bool {
	p.mu.Lock()
	s := p.current
	p.mu.Unlock()
	return s != nil && !s.paused.Load() && !s.drained.Load()
}

// Elapsed returns seconds played since the last Play.
func (p *PortAudioPlayer) Elapsed() float64 {
	p.mu.Lock()
	s := p.current
	rate := p.sampleRate
	p.mu.Unlock()
	if s == nil || rate == 0 {
		return 0
	}
	return float64(s.played.Load()) / float64(rate)
}

// Close stops playback. The audio subsystem itself is released by Terminate.
func (p *PortAudioPlayer) Close() error {
	p.Stop()
	return nil
}

func (s *session) decode(ctx context.Context, r io.Reader) {
	defer close(s.done)
	defer close(s.frames)

	br := bufio.NewReaderSize(r, framesPerBuffer*s.channels*2*4)
	raw := make([]byte, framesPerBuffer*s.channels*2)
	for {
		n, err := io.ReadFull(br, raw)
		// keep whole frames only
		n -= n % (s.channels * 2)
		if n > 0 {
			samples := make([]int16, n/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
			}
			select {
			case s.frames <- samples:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && ctx.Err() == nil {
				logging.Warn("decoder read failed", logging.ErrorField(err))
			}
			return
		}
	}
}

// fill is the portaudio callback. It never blocks: missing data is silence.
func (s *session) fill(out []int16) {
	written := 0
feed:
	for written < len(out) {
		if len(s.pending) == 0 {
			select {
			case buf, ok := <-s.frames:
				if !ok {
					s.drained.Store(true)
					break feed
				}
				s.pending = buf
			default:
				break feed
			}
		}
		n := copy(out[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	for i := written; i < len(out); i++ {
		out[i] = 0
	}
	s.played.Add(int64(written / s.channels))
}

func (s *session) shutdown() {
	if s.stream != nil {
		if !s.paused.Load() {
			_ = s.stream.Stop()
		}
		if err := s.stream.Close(); err != nil {
			logging.Warn("closing output stream", logging.ErrorField(err))
		}
	}
	s.cancel()
	<-s.done
	_ = s.decoder.Wait()
}
