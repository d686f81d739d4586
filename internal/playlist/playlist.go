// Package playlist keeps the ordered list of source files. Display order is
// merge order.
package playlist

import "sort"

// List is an ordered sequence of file paths. Duplicates are allowed.
// It is not safe for concurrent use.
type List struct {
	paths []string
}

// New returns a list holding paths in order.
func New(paths ...string) *List {
	l := &List{}
	l.Append(paths...)
	return l
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.paths)
}

// At returns the path at i, or "" when i is out of range.
func (l *List) At(i int) string {
	if i < 0 || i >= len(l.paths) {
		return ""
	}
	return l.paths[i]
}

// Paths returns a copy of the current order.
func (l *List) Paths() []string {
	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// Append adds paths at the end, skipping empty strings.
func (l *List) Append(paths ...string) {
	for _, p := range paths {
		if p != "" {
			l.paths = append(l.paths, p)
		}
	}
}

// Remove deletes the entries at indices. Indices are applied highest first so
// earlier deletions don't shift later ones; duplicates and out-of-range
// indices are ignored.
func (l *List) Remove(indices ...int) {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	last := -1
	for _, idx := range sorted {
		if idx == last || idx < 0 || idx >= len(l.paths) {
			continue
		}
		l.paths = append(l.paths[:idx], l.paths[idx+1:]...)
		last = idx
	}
}

// MoveUp swaps the entry at i with its predecessor and returns its new index.
// Index 0 and out-of-range indices are left alone.
func (l *List) MoveUp(i int) int {
	if i <= 0 || i >= len(l.paths) {
		return i
	}
	l.paths[i-1], l.paths[i] = l.paths[i], l.paths[i-1]
	return i - 1
}

// MoveDown swaps the entry at i with its successor and returns its new index.
// The last index and out-of-range indices are left alone.
func (l *List) MoveDown(i int) int {
	if i < 0 || i >= len(l.paths)-1 {
		return i
	}
	l.paths[i], l.paths[i+1] = l.paths[i+1], l.paths[i]
	return i + 1
}

// Clear empties the list.
func (l *List) Clear() {
	l.paths = nil
}
