//go:build !linux && !darwin && !windows

package main

import "os/exec"

func revealCommand(path string) *exec.Cmd {
	return exec.Command("xdg-open", parentDir(path))
}
