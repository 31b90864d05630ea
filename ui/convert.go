package ui

import (
	"context"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"ffconvert/ffmpeg"
)

// createConvertForm creates the file picker, format select, convert button
// and progress bar
func (a *App) createConvertForm() fyne.CanvasObject {
	a.fileLabel = widget.NewLabel("")
	a.fileLabel.Hide()

	selectBtn := widget.NewButton("Select Video", a.chooseInput)

	labels := formatLabels()
	a.formatSelect = widget.NewSelect(labels, func(selected string) {
		if f, ok := ffmpeg.ParseFormat(selected); ok {
			a.cfg.LastFormat = string(f)
		}
	})
	if f, ok := ffmpeg.ParseFormat(a.cfg.LastFormat); ok {
		a.formatSelect.SetSelected(f.Label())
	} else {
		a.formatSelect.SetSelectedIndex(0)
	}

	convertBtn := widget.NewButton("Convert", a.startConversion)

	a.progressBar = widget.NewProgressBar()
	a.progressBar.Max = 100

	a.guard = newSingleFlight(selectBtn, convertBtn, a.formatSelect)

	return container.NewVBox(
		container.NewHBox(selectBtn, a.fileLabel),
		container.NewHBox(widget.NewLabel("Output format:"), a.formatSelect),
		convertBtn,
		a.progressBar,
	)
}

// chooseInput lets the user pick the video to convert
func (a *App) chooseInput() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("Error", err.Error())
			return
		}
		if reader == nil {
			return // User cancelled
		}
		reader.Close()

		path := localPath(reader.URI())
		a.inputPath = path
		a.cfg.LastInputDir = filepath.Dir(path)
		a.fileLabel.SetText(truncateName(filepath.Base(path)))
		a.fileLabel.Show()
	}, a.window)

	fd.SetFilter(storage.NewExtensionFileFilter(formatExtensions()))
	if a.cfg.LastInputDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(a.cfg.LastInputDir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// chooseTool lets the user point at the ffmpeg executable and remembers it
func (a *App) chooseTool() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("Error", err.Error())
			return
		}
		if reader == nil {
			return // User cancelled
		}
		reader.Close()

		a.cfg.FFmpegPath = localPath(reader.URI())
		if err := a.cfg.Save(); err != nil {
			a.logger.Error("could not save settings", "error", err)
			a.showError("Error", "Could not save the FFmpeg path: "+err.Error())
			return
		}
		a.logger.Info("ffmpeg path set", "path", a.cfg.FFmpegPath)
	}, a.window)

	if runtime.GOOS == "windows" {
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".exe"}))
	}
	fd.Show()
}

// startConversion runs the selected conversion in the background. Progress
// reaches the bar through fyne.Do; the guard keeps a second one from starting.
func (a *App) startConversion() {
	if !a.guard.begin() {
		return
	}
	a.progressBar.SetValue(0)

	req := ffmpeg.NewRequest(a.cfg.FFmpegPath, a.inputPath, a.formatSelect.Selected)

	go func() {
		res := a.conv.Convert(context.Background(), req, func(percent int) {
			a.progressBar.SetValue(float64(percent))
		})

		fyne.Do(func() {
			a.guard.end()
			if res.OK() {
				a.showInfo("Success", successMessage)
			} else {
				a.showError("Error", failureMessage(res.Reason))
			}
			if a.onFinished != nil {
				a.onFinished(res)
			}
		})
	}()
}

// localPath converts a file URI to a native path.
// On Windows, remove leading slash from /C:/...
func localPath(uri fyne.URI) string {
	path := uri.Path()
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return path
}

func formatLabels() []string {
	var labels []string
	for _, f := range ffmpeg.Formats() {
		labels = append(labels, f.Label())
	}
	return labels
}

func formatExtensions() []string {
	var exts []string
	for _, f := range ffmpeg.Formats() {
		exts = append(exts, f.Extension())
	}
	return exts
}
