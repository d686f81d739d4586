package main

import (
	"context"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"

	"github.com/fremen-fi/wavmerge/internal/audio"
	"github.com/fremen-fi/wavmerge/internal/config"
	"github.com/fremen-fi/wavmerge/internal/ffmpeg"
	"github.com/fremen-fi/wavmerge/internal/logging"
	"github.com/fremen-fi/wavmerge/internal/merge"
	"github.com/fremen-fi/wavmerge/internal/playlist"
	"github.com/fremen-fi/wavmerge/internal/preview"
	"github.com/fremen-fi/wavmerge/internal/watch"
)

// WavMerger is the application state owned by the window.
type WavMerger struct {
	window fyne.Window
	ctx    context.Context
	cancel context.CancelFunc

	settings config.Settings
	store    *config.Store
	cfg      config.Config

	files     *playlist.List
	selected  selection
	missing   map[string]bool
	reader    *audio.Reader
	transport *preview.Transport
	merger    *merge.Orchestrator
	watcher   *watch.Watcher
	merging   bool

	fileList       *widget.List
	removeBtn      *widget.Button
	upBtn          *widget.Button
	downBtn        *widget.Button
	clearBtn       *widget.Button
	playBtn        *widget.Button
	seekSlider     *widget.Slider
	timeLabel      *widget.Label
	formatRadio    *widget.RadioGroup
	bitrateSelect  *widget.Select
	mergeBtn       *widget.Button
	progressBar    *widget.ProgressBar
	infoPanel      *widget.Entry
	updatingSlider bool

	closeOnce sync.Once
}

func main() {
	Execute()
}

// runGUI opens the main window and blocks until it is closed.
func runGUI(settings config.Settings) error {
	if err := preview.Initialize(); err != nil {
		logging.Error("audio output unavailable", logging.ErrorField(err))
		return err
	}
	defer func() {
		if err := preview.Terminate(); err != nil {
			logging.Warn("terminating audio output", logging.ErrorField(err))
		}
	}()

	runner := ffmpeg.New(settings.FFmpegPath, settings.FFprobePath)
	if err := runner.Check(); err != nil {
		logging.Warn("ffmpeg check failed", logging.ErrorField(err))
	}
	reader := audio.NewReader(runner)

	a := app.NewWithID("fi.fremen.wavmerge")
	a.Settings().SetTheme(&mergerTheme{})

	w := a.NewWindow("WAV Merger")
	w.Resize(fyne.NewSize(1000, 700))

	ctx, cancel := context.WithCancel(context.Background())
	store := config.NewStore(settings.ConfigPath)
	cfg, _ := store.Load()

	m := &WavMerger{
		window:    w,
		ctx:       ctx,
		cancel:    cancel,
		settings:  settings,
		store:     store,
		cfg:       cfg,
		files:     playlist.New(),
		selected:  selection{},
		missing:   make(map[string]bool),
		reader:    reader,
		transport: preview.NewTransport(preview.NewPortAudioPlayer(runner, reader), reader),
		merger:    merge.New(runner, reader),
	}

	watcher, err := watch.New()
	if err != nil {
		logging.Warn("file watcher unavailable", logging.ErrorField(err))
	} else {
		m.watcher = watcher
		go m.watchFiles()
	}

	m.setupUI()
	go m.pollPreview()

	w.SetOnClosed(m.shutdown)
	logging.Info("window opened", logging.String("config", settings.ConfigPath))
	w.ShowAndRun()
	return nil
}

// shutdown runs once when the window closes.
func (m *WavMerger) shutdown() {
	m.closeOnce.Do(func() {
		m.cancel()
		_ = m.store.Save(m.cfg)
		m.transport.Close()
		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				logging.Debug("closing watcher", logging.ErrorField(err))
			}
		}
		logging.Info("window closed")
	})
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
