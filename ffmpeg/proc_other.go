//go:build !windows

package ffmpeg

import (
	"io/fs"
	"os/exec"
)

// hideConsole is a no-op: only Windows attaches console windows to children.
func hideConsole(cmd *exec.Cmd) {}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
