package ui

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffconvert/config"
	"ffconvert/ffmpeg"
)

// newTestApp builds the converter window on a fyne test app without
// entering its event loop
func newTestApp(t *testing.T, toolPath string) (*App, <-chan ffmpeg.Result) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	conv := ffmpeg.NewConverter(logger)
	conv.Dispatch = fyne.Do

	cfg := config.DefaultConfig()
	cfg.FFmpegPath = toolPath

	a := &App{
		fyneApp: test.NewTempApp(t),
		conv:    conv,
		cfg:     cfg,
		logger:  logger,
	}
	a.window = a.fyneApp.NewWindow("FFmpeg Converter")
	a.window.SetContent(a.createConvertForm())
	a.window.SetMainMenu(a.createMainMenu())

	done := make(chan ffmpeg.Result, 1)
	a.onFinished = func(res ffmpeg.Result) { done <- res }
	return a, done
}

func writeFakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func waitResult(t *testing.T, done <-chan ffmpeg.Result) ffmpeg.Result {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(10 * time.Second):
		t.Fatal("conversion did not finish")
		return ffmpeg.Result{}
	}
}

// assertReleased checks that every entry point is usable again
func assertReleased(t *testing.T, a *App) {
	t.Helper()
	assert.False(t, a.guard.busy)
	for _, c := range a.guard.controls {
		assert.False(t, c.Disabled())
	}
	for _, item := range a.guard.menuItems {
		assert.False(t, item.Disabled, item.Label)
	}
}

func TestStartConversionReleasesGuard(t *testing.T) {
	okTool := ": > \"$3\"\necho \"frame=1 fps=30\" >&2\n"
	failTool := "echo \"frame=1 fps=30\" >&2\nexit 1\n"

	tests := []struct {
		name     string
		tool     string // script body; empty means no tool configured
		hasInput bool
		want     ffmpeg.Reason
	}{
		{"precondition failure", "", true, ffmpeg.ToolMissing},
		{"missing input", okTool, false, ffmpeg.InputMissing},
		{"success", okTool, true, ffmpeg.Succeeded},
		{"output not produced", failTool, true, ffmpeg.OutputNotProduced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolPath := ""
			if tt.tool != "" {
				toolPath = writeFakeTool(t, tt.tool)
			}
			a, done := newTestApp(t, toolPath)
			if tt.hasInput {
				a.inputPath = filepath.Join(t.TempDir(), "clip.mov")
				require.NoError(t, os.WriteFile(a.inputPath, []byte("movie"), 0o644))
			}

			a.startConversion()
			res := waitResult(t, done)

			assert.Equal(t, tt.want, res.Reason)
			assertReleased(t, a)
		})
	}
}
