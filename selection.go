package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// selection is the set of checked rows in the file list.
type selection map[int]struct{}

func (s selection) has(i int) bool {
	_, ok := s[i]
	return ok
}

func (s selection) set(i int, on bool) {
	if on {
		s[i] = struct{}{}
	} else {
		delete(s, i)
	}
}

// only returns the selected row when exactly one is selected.
func (s selection) only() (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	for i := range s {
		return i, true
	}
	return 0, false
}

// first returns the lowest selected row.
func (s selection) first() (int, bool) {
	idx := s.indices()
	if len(idx) == 0 {
		return 0, false
	}
	return idx[0], true
}

func (s selection) indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s selection) clear() {
	for i := range s {
		delete(s, i)
	}
}

// selectionSummary is the info panel text for a multi-row selection.
func selectionSummary(selected, total int) string {
	return fmt.Sprintf("%d selected (%d total)", selected, total)
}

// displayName is how a path is shown in the file list.
func displayName(path string, missing bool) string {
	name := filepath.Base(path)
	if missing {
		name += " (missing)"
	}
	return name
}

// parentDir is the folder the file manager opens for path.
func parentDir(path string) string {
	return filepath.Dir(path)
}

// withExtension appends ext to path unless it already ends with it.
func withExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

// mergeStatus is the info panel text while a merge runs.
func mergeStatus(ratio float64) string {
	return fmt.Sprintf("Merging... %.1f%%", ratio*100)
}
