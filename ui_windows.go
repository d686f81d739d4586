//go:build windows

package main

import "os/exec"

func revealCommand(path string) *exec.Cmd {
	return exec.Command("explorer", "/select,", path)
}
