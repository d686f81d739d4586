package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/fremen-fi/wavmerge/internal/audio"
	"github.com/fremen-fi/wavmerge/internal/config"
	"github.com/fremen-fi/wavmerge/internal/logging"
	"github.com/fremen-fi/wavmerge/internal/merge"
	"github.com/fremen-fi/wavmerge/internal/preview"
	"github.com/fremen-fi/wavmerge/internal/watch"
)

const usageGuide = `WAV Merger joins several WAV files into one file, in the order shown in the list.

ADDING FILES
Click 'Add WAV files' and pick a file. The dialog opens again after each pick so you can keep adding; press Cancel when done. The folder you used last is remembered.

ORDER
Tick files to select them. 'Up' and 'Down' move the first selected file. 'Remove selected' drops every ticked file. 'Clear list' empties the list after asking.

PREVIEW
Select a file and press Play; with several selected, the first one plays. Drag the slider to jump within the file. Dragging while stopped moves the position without starting playback.

MERGE
WAV copies the audio as is, so all inputs should share sample rate and channel count. MP3 re-encodes at the chosen bitrate. Click Merge and choose where to save. An existing file with the same name is overwritten.

Files that are deleted or renamed while listed are marked (missing).`

func (m *WavMerger) setupUI() {
	m.fileList = widget.NewList(
		func() int { return m.files.Len() },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil,
				widget.NewCheck("", nil), nil,
				widget.NewLabel("template"),
			)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			row := o.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			check := row.Objects[1].(*widget.Check)

			path := m.files.At(i)
			label.SetText(displayName(path, m.missing[filepath.Clean(path)]))

			check.OnChanged = nil
			check.SetChecked(m.selected.has(i))
			check.OnChanged = func(on bool) {
				m.selected.set(i, on)
				m.selectionChanged()
			}
		},
	)
	// a row click selects just that row; ticking adds to the selection
	m.fileList.OnSelected = func(id widget.ListItemID) {
		m.selected.clear()
		m.selected.set(id, true)
		m.fileList.UnselectAll()
		m.fileList.Refresh()
		m.selectionChanged()
	}

	addBtn := widget.NewButtonWithIcon("Add WAV files", theme.ContentAddIcon(), m.guard(m.addFiles))
	m.removeBtn = widget.NewButtonWithIcon("Remove selected", theme.ContentRemoveIcon(), m.guard(m.removeSelected))
	m.upBtn = widget.NewButtonWithIcon("Up", theme.MoveUpIcon(), m.guard(m.moveUp))
	m.downBtn = widget.NewButtonWithIcon("Down", theme.MoveDownIcon(), m.guard(m.moveDown))
	m.clearBtn = widget.NewButtonWithIcon("Clear list", theme.DeleteIcon(), m.guard(m.confirmClear))

	m.playBtn = widget.NewButtonWithIcon("Play", theme.MediaPlayIcon(), m.guard(m.togglePlay))
	m.timeLabel = widget.NewLabel("00:00 / 00:00")
	m.seekSlider = widget.NewSlider(0, 1)
	m.seekSlider.Step = 0.001
	m.seekSlider.OnChanged = func(float64) {
		if m.updatingSlider {
			return
		}
		m.transport.BeginSeek()
	}
	m.seekSlider.OnChangeEnded = func(ratio float64) {
		if err := m.transport.EndSeek(ratio); err != nil {
			dialog.ShowError(err, m.window)
		}
		m.refreshPreview()
	}

	m.bitrateSelect = widget.NewSelect(config.BitrateLabels(), nil)
	m.bitrateSelect.SetSelected(strconv.Itoa(m.settings.DefaultBitrate))
	m.formatRadio = widget.NewRadioGroup([]string{"WAV", "MP3"}, func(choice string) {
		if choice == "MP3" {
			m.bitrateSelect.Enable()
		} else {
			m.bitrateSelect.Disable()
		}
	})
	m.formatRadio.Horizontal = true
	m.formatRadio.Required = true
	m.formatRadio.SetSelected("WAV")

	m.mergeBtn = widget.NewButtonWithIcon("Merge", theme.DocumentSaveIcon(), m.guard(m.startMerge))
	m.mergeBtn.Importance = widget.HighImportance

	m.progressBar = widget.NewProgressBar()
	m.progressBar.Hide()

	m.infoPanel = widget.NewMultiLineEntry()
	m.infoPanel.Wrapping = fyne.TextWrapWord
	m.infoPanel.SetPlaceHolder("Select a file to see its properties...")
	m.infoPanel.Disable()

	helpBtn := widget.NewButtonWithIcon("", theme.HelpIcon(), m.showHelp)

	toolbar := container.NewHBox(addBtn, m.removeBtn, m.upBtn, m.downBtn, m.clearBtn)
	previewRow := container.NewBorder(nil, nil, m.playBtn, m.timeLabel, m.seekSlider)
	mergeRow := container.NewHBox(
		widget.NewLabel("Output:"), m.formatRadio,
		widget.NewLabel("Bitrate (kbps):"), m.bitrateSelect,
		layout.NewSpacer(), m.mergeBtn,
	)

	left := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		container.NewVBox(
			widget.NewSeparator(),
			previewRow,
			mergeRow,
			m.progressBar,
		),
		nil,
		nil,
		m.fileList,
	)
	right := container.NewBorder(
		container.NewHBox(widget.NewLabel("Properties"), layout.NewSpacer(), helpBtn),
		nil,
		nil,
		nil,
		m.infoPanel,
	)

	split := container.NewHSplit(left, right)
	split.SetOffset(0.55)

	m.window.SetContent(split)
	m.updateButtons()
}

// guard turns a panic inside a UI action into an error dialog.
func (m *WavMerger) guard(action func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("ui action failed", logging.Any("panic", r))
				dialog.ShowError(fmt.Errorf("unexpected error: %v", r), m.window)
			}
		}()
		action()
	}
}

func (m *WavMerger) setInfo(text string) {
	m.infoPanel.SetText(text)
}

func (m *WavMerger) showHelp() {
	text := widget.NewLabel(usageGuide)
	text.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(text)
	scroll.SetMinSize(fyne.NewSize(520, 380))
	dialog.ShowCustom("How to use WAV Merger", "Close", scroll, m.window)
}

func (m *WavMerger) updateButtons() {
	hasSelection := len(m.selected) > 0
	hasFiles := m.files.Len() > 0
	setEnabled(m.removeBtn, hasSelection)
	setEnabled(m.upBtn, hasSelection)
	setEnabled(m.downBtn, hasSelection)
	setEnabled(m.playBtn, hasSelection || m.transport.State() == preview.Playing)
	setEnabled(m.clearBtn, hasFiles && !m.merging)
	setEnabled(m.mergeBtn, hasFiles && !m.merging)
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func (m *WavMerger) folderLister() (fyne.ListableURI, error) {
	return storage.ListerForURI(storage.NewFileURI(m.cfg.LastFolderOr(homeDir())))
}

func (m *WavMerger) rememberFolder(dir string) {
	m.cfg.LastFolder = dir
	_ = m.store.Save(m.cfg)
}

// addFiles reopens the picker after each chosen file until it is cancelled.
func (m *WavMerger) addFiles() {
	open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, m.window)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()

		m.files.Append(path)
		m.rememberFolder(filepath.Dir(path))
		m.filesChanged()
		logging.Debug("file added", logging.String("path", path), logging.Int("count", m.files.Len()))

		m.addFiles()
	}, m.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
	if lister, err := m.folderLister(); err == nil {
		open.SetLocation(lister)
	}
	open.Show()
}

func (m *WavMerger) removeSelected() {
	indices := m.selected.indices()
	if len(indices) == 0 {
		return
	}
	m.transport.Stop()
	m.files.Remove(indices...)
	m.selected.clear()
	m.filesChanged()
	m.selectionChanged()
}

func (m *WavMerger) moveUp() {
	if i, ok := m.selected.first(); ok {
		m.moveSelection(m.files.MoveUp(i))
	}
}

func (m *WavMerger) moveDown() {
	if i, ok := m.selected.first(); ok {
		m.moveSelection(m.files.MoveDown(i))
	}
}

func (m *WavMerger) moveSelection(to int) {
	m.selected.clear()
	m.selected.set(to, true)
	m.filesChanged()
}

func (m *WavMerger) confirmClear() {
	if m.files.Len() == 0 {
		return
	}
	msg := fmt.Sprintf("Remove all %d files from the list?", m.files.Len())
	dialog.ShowConfirm("Clear list", msg, func(ok bool) {
		if !ok {
			return
		}
		m.transport.Stop()
		m.files.Clear()
		m.selected.clear()
		m.missing = make(map[string]bool)
		m.filesChanged()
		m.selectionChanged()
	}, m.window)
}

// filesChanged refreshes everything derived from the list contents.
func (m *WavMerger) filesChanged() {
	m.fileList.Refresh()
	if m.watcher != nil {
		m.watcher.Sync(m.files.Paths())
	}
	m.updateButtons()
}

func (m *WavMerger) selectionChanged() {
	m.transport.Stop()
	m.refreshPreview()
	m.updateButtons()

	switch len(m.selected) {
	case 0:
		m.setInfo("")
	case 1:
		i, _ := m.selected.only()
		m.showProperties(m.files.At(i))
	default:
		m.setInfo(selectionSummary(len(m.selected), m.files.Len()))
	}
}

// showProperties reads metadata off the UI thread.
func (m *WavMerger) showProperties(path string) {
	m.setInfo(fmt.Sprintf("Reading %s...", filepath.Base(path)))
	go func() {
		meta, err := m.reader.Read(m.ctx, path)
		fyne.Do(func() {
			if i, ok := m.selected.only(); !ok || m.files.At(i) != path {
				return
			}
			if err != nil {
				m.setInfo(fmt.Sprintf("Could not read %s:\n%v", filepath.Base(path), err))
				return
			}
			m.setInfo(audio.Report(meta))
		})
	}()
}

func (m *WavMerger) togglePlay() {
	if m.transport.State() == preview.Playing {
		m.transport.Stop()
		m.refreshPreview()
		m.setInfo("")
		return
	}

	i, ok := m.selected.first()
	if !ok {
		return
	}
	path := m.files.At(i)
	if err := m.transport.Start(m.ctx, path); err != nil {
		dialog.ShowError(err, m.window)
	} else {
		m.setInfo("Now playing: " + filepath.Base(path))
	}
	m.refreshPreview()
}

func (m *WavMerger) refreshPreview() {
	st := m.transport.Status()
	if !m.transport.Dragging() {
		m.updatingSlider = true
		m.seekSlider.SetValue(st.Ratio)
		m.updatingSlider = false
	}
	m.timeLabel.SetText(st.Label)

	if st.State == preview.Playing {
		m.playBtn.SetText("Stop")
		m.playBtn.SetIcon(theme.MediaStopIcon())
	} else {
		m.playBtn.SetText("Play")
		m.playBtn.SetIcon(theme.MediaPlayIcon())
	}
	setEnabled(m.playBtn, len(m.selected) > 0 || st.State == preview.Playing)
}

// pollPreview ticks the transport on the UI thread until shutdown.
func (m *WavMerger) pollPreview() {
	ticker := time.NewTicker(config.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(func() {
				if m.ctx.Err() != nil || m.transport.State() != preview.Playing {
					return
				}
				m.transport.Tick()
				m.refreshPreview()
			})
		}
	}
}

func (m *WavMerger) watchFiles() {
	for ev := range m.watcher.Events() {
		fyne.Do(func() { m.fileEvent(ev) })
	}
}

func (m *WavMerger) fileEvent(ev watch.Event) {
	if m.ctx.Err() != nil {
		return
	}
	logging.Debug("tracked file event", logging.String("path", ev.Path), logging.String("op", ev.Op.String()))
	switch ev.Op {
	case watch.Removed:
		m.missing[ev.Path] = true
	case watch.Changed:
		delete(m.missing, ev.Path)
	}
	m.fileList.Refresh()

	if i, ok := m.selected.only(); ok && filepath.Clean(m.files.At(i)) == ev.Path {
		m.showProperties(m.files.At(i))
	}
}

func (m *WavMerger) outputFormat() (config.OutputFormat, error) {
	kbps, _ := strconv.Atoi(m.bitrateSelect.Selected)
	return config.ParseFormat(m.formatRadio.Selected, kbps)
}

func (m *WavMerger) startMerge() {
	if m.files.Len() == 0 {
		dialog.ShowInformation("No files", "Add WAV files to the list before merging.", m.window)
		return
	}
	format, err := m.outputFormat()
	if err != nil {
		dialog.ShowError(err, m.window)
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, m.window)
			return
		}
		if w == nil {
			return
		}
		chosen := w.URI().Path()
		_ = w.Close()

		output := withExtension(chosen, format.Extension())
		if output != chosen {
			// the dialog already created the file under the bare name
			_ = os.Remove(chosen)
		}
		m.rememberFolder(filepath.Dir(output))
		m.runMerge(m.files.Paths(), format, output)
	}, m.window)
	save.SetFileName("merged" + format.Extension())
	save.SetFilter(storage.NewExtensionFileFilter([]string{format.Extension()}))
	if lister, err := m.folderLister(); err == nil {
		save.SetLocation(lister)
	}
	save.Show()
}

func (m *WavMerger) runMerge(files []string, format config.OutputFormat, output string) {
	m.transport.Stop()
	m.refreshPreview()
	m.merging = true
	m.updateButtons()
	m.progressBar.SetValue(0)
	m.progressBar.Show()
	m.setInfo(mergeStatus(0))

	go func() {
		res, err := m.merger.Merge(m.ctx, files, format, output, func(ratio float64) {
			fyne.Do(func() {
				m.progressBar.SetValue(ratio)
				m.setInfo(mergeStatus(ratio))
			})
		})
		fyne.Do(func() {
			m.merging = false
			m.updateButtons()
			if m.ctx.Err() != nil {
				return
			}
			if err != nil {
				m.mergeFailed(err)
				return
			}
			m.mergeSucceeded(res)
		})
	}()
}

func (m *WavMerger) mergeFailed(err error) {
	var toolErr *merge.ToolError
	switch {
	case errors.Is(err, merge.ErrNoFiles):
		dialog.ShowInformation("No files", "Add WAV files to the list before merging.", m.window)
	case errors.As(err, &toolErr):
		m.setInfo(toolErr.Diagnostic)
		dialog.ShowError(fmt.Errorf("merge failed: %w", err), m.window)
	default:
		m.setInfo(err.Error())
		dialog.ShowError(err, m.window)
	}
}

func (m *WavMerger) mergeSucceeded(res merge.Result) {
	var b strings.Builder
	fmt.Fprintf(&b, "Merge complete: %s\n\n", res.Output)
	if res.MetadataErr != nil {
		fmt.Fprintf(&b, "Could not read the merged file: %v\n", res.MetadataErr)
	} else {
		b.WriteString(audio.Report(res.Metadata))
		if len(res.Summary) > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Join(res.Summary, "\n"))
		}
	}
	m.setInfo(b.String())

	msg := widget.NewLabel(fmt.Sprintf("Saved %s", filepath.Base(res.Output)))
	dialog.ShowCustomConfirm("Merge complete", "Show in folder", "Close", msg, func(reveal bool) {
		if reveal {
			m.reveal(res.Output)
		}
	}, m.window)
}

func (m *WavMerger) reveal(path string) {
	cmd := revealCommand(path)
	if err := cmd.Start(); err != nil {
		dialog.ShowError(fmt.Errorf("cannot open folder: %w", err), m.window)
		return
	}
	go func() { _ = cmd.Wait() }()
}
