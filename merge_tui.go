package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fremen-fi/wavmerge/internal/audio"
	"github.com/fremen-fi/wavmerge/internal/config"
	"github.com/fremen-fi/wavmerge/internal/merge"
)

const maxBarWidth = 72

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f8a70"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

type (
	mergeProgressMsg float64
	mergeDoneMsg     struct {
		res merge.Result
		err error
	}
)

type mergeModel struct {
	progress progress.Model
	sub      chan tea.Msg
	cancel   context.CancelFunc

	files   int
	output  string
	format  string
	ratio   float64
	aborted bool
	done    bool

	res merge.Result
	err error
}

func waitForMerge(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func (m mergeModel) Init() tea.Cmd {
	return waitForMerge(m.sub)
}

func (m mergeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.aborted {
			// killing ffmpeg makes Merge return; keep waiting for it
			m.aborted = true
			m.cancel()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-4, maxBarWidth)
		return m, nil

	case mergeProgressMsg:
		m.ratio = float64(msg)
		return m, tea.Batch(m.progress.SetPercent(m.ratio), waitForMerge(m.sub))

	case mergeDoneMsg:
		m.done = true
		m.res = msg.res
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m mergeModel) View() string {
	if m.done {
		return ""
	}
	s := "\n" + titleStyle.Render(fmt.Sprintf("Merging %d files into %s (%s)", m.files, filepath.Base(m.output), m.format)) + "\n\n"
	s += m.progress.View() + "\n\n"
	if m.aborted {
		s += mutedStyle.Render("aborting...") + "\n"
	} else {
		s += mutedStyle.Render("ctrl+c to abort") + "\n"
	}
	return s
}

// runMergeTUI runs the merge in the background and shows its progress until it
// finishes.
func runMergeTUI(ctx context.Context, orch *merge.Orchestrator, files []string, format config.OutputFormat, output string) (merge.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) {
		select {
		case sub <- msg:
		case <-ctx.Done():
		}
	}
	go func() {
		res, err := orch.Merge(ctx, files, format, output, func(r float64) {
			send(mergeProgressMsg(r))
		})
		// the done message must arrive even after an abort
		sub <- mergeDoneMsg{res: res, err: err}
	}()

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = maxBarWidth
	m := mergeModel{
		progress: bar,
		sub:      sub,
		cancel:   cancel,
		files:    len(files),
		output:   output,
		format:   format.String(),
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return merge.Result{}, err
	}
	fm := final.(mergeModel)
	return fm.res, fm.err
}

func printResult(w io.Writer, res merge.Result) {
	fmt.Fprintln(w, successStyle.Render("Merged into "+res.Output))
	fmt.Fprintln(w)
	if res.MetadataErr != nil {
		fmt.Fprintf(w, "Could not read the merged file: %v\n", res.MetadataErr)
		return
	}
	fmt.Fprint(w, audio.Report(res.Metadata))
	for _, line := range res.Summary {
		fmt.Fprintln(w, mutedStyle.Render(line))
	}
}
