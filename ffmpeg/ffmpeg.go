package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrToolNotFound is returned by Locate when no ffmpeg binary can be found
var ErrToolNotFound = errors.New("ffmpeg not found")

// ToolName returns the platform's ffmpeg executable name
func ToolName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

// Locate looks for ffmpeg in the bin/ folder next to the executable, then
// falls back to PATH. It is used when the user has not chosen a tool yet.
func Locate() (string, error) {
	var searchPaths []string
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		searchPaths = append(searchPaths,
			filepath.Join(exeDir, "bin"),       // Next to executable
			filepath.Join(exeDir, "..", "bin"), // Parent/bin (for development)
		)
	}
	searchPaths = append(searchPaths, "bin") // Relative to working directory

	name := ToolName()
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, name)
		if ToolUsable(candidate) {
			return candidate, nil
		}
	}

	// Fall back to PATH
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrToolNotFound, err)
	}
	return path, nil
}

// ToolUsable reports whether path names an existing executable file
func ToolUsable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return isExecutable(info)
}

// fileExists reports whether path names an existing non-directory entry
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// pathExists reports whether anything is present at path
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
