package main

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/stretchr/testify/assert"

	"github.com/fremen-fi/wavmerge/internal/merge"
)

func TestSelection(t *testing.T) {
	s := selection{}
	_, ok := s.only()
	assert.False(t, ok)

	s.set(3, true)
	i, ok := s.only()
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	s.set(0, true)
	s.set(7, true)
	_, ok = s.only()
	assert.False(t, ok)
	assert.Equal(t, []int{0, 3, 7}, s.indices())

	s.set(3, false)
	assert.False(t, s.has(3))
	assert.Equal(t, []int{0, 7}, s.indices())

	s.clear()
	assert.Empty(t, s.indices())
}

func TestDisplayName(t *testing.T) {
	path := filepath.Join("music", "takes", "take 1.wav")
	assert.Equal(t, "take 1.wav", displayName(path, false))
	assert.Equal(t, "take 1.wav (missing)", displayName(path, true))
}

func TestSelectionSummary(t *testing.T) {
	assert.Equal(t, "3 selected (10 total)", selectionSummary(3, 10))
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "out.mp3", withExtension("out", ".mp3"))
	assert.Equal(t, "out.mp3", withExtension("out.mp3", ".mp3"))
	assert.Equal(t, "OUT.WAV", withExtension("OUT.WAV", ".wav"))
	assert.Equal(t, "out.wav.mp3", withExtension("out.wav", ".mp3"))
}

func TestParentDir(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b"), parentDir(filepath.Join("a", "b", "c.wav")))
}

func TestMergeStatus(t *testing.T) {
	assert.Equal(t, "Merging... 0.0%", mergeStatus(0))
	assert.Equal(t, "Merging... 42.5%", mergeStatus(0.425))
	assert.Equal(t, "Merging... 100.0%", mergeStatus(1))
}

func TestMergeModelFinishes(t *testing.T) {
	cancelled := false
	m := mergeModel{
		progress: progress.New(),
		sub:      make(chan tea.Msg, 1),
		cancel:   func() { cancelled = true },
		files:    2,
		output:   "out.wav",
	}

	next, cmd := m.Update(mergeProgressMsg(0.5))
	m = next.(mergeModel)
	assert.Equal(t, 0.5, m.ratio)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Merging 2 files into out.wav")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(mergeModel)
	assert.True(t, m.aborted)
	assert.True(t, cancelled)
	assert.Contains(t, m.View(), "aborting")

	failure := &merge.ToolError{ExitCode: 255, Diagnostic: "Exiting normally, received signal 2."}
	next, cmd = m.Update(mergeDoneMsg{err: failure})
	m = next.(mergeModel)
	assert.True(t, m.done)
	assert.Empty(t, m.View())
	assert.True(t, errors.Is(m.err, failure))
	assert.NotNil(t, cmd)
}
