//go:build linux

package main

import "os/exec"

// revealCommand opens the folder holding path in the desktop file manager.
func revealCommand(path string) *exec.Cmd {
	return exec.Command("xdg-open", parentDir(path))
}
