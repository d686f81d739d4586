//go:build darwin

package main

import "os/exec"

// revealCommand selects path in Finder.
func revealCommand(path string) *exec.Cmd {
	return exec.Command("open", "-R", path)
}
