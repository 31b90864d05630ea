//go:build windows

package ffmpeg

import (
	"io/fs"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// hideConsole keeps the tool from opening a console window of its own
func hideConsole(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.HideWindow = true
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NO_WINDOW
}

// Windows has no executable bit; any regular file is accepted.
func isExecutable(info fs.FileInfo) bool {
	return info.Mode().IsRegular()
}
