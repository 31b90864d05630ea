package ui

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"ffconvert/config"
	"ffconvert/ffmpeg"
)

// App represents the main application
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	conv    *ffmpeg.Converter
	cfg     *config.Config
	logger  *slog.Logger

	// Selected input video, empty until the user picks one
	inputPath string

	// Controls touched outside of their own callbacks
	fileLabel    *widget.Label
	formatSelect *widget.Select
	progressBar  *widget.ProgressBar
	mainMenu     *fyne.MainMenu

	// Disables every entry point while a conversion runs
	guard *singleFlight

	// Called on the UI goroutine once a conversion's result has been shown
	onFinished func(ffmpeg.Result)
}

// NewApp creates a new application instance
func NewApp(logger *slog.Logger) *App {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("could not load settings, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	// Nothing chosen yet: offer whatever ffmpeg can be found
	if cfg.FFmpegPath == "" {
		if path, err := ffmpeg.Locate(); err == nil {
			cfg.FFmpegPath = path
			logger.Info("found ffmpeg", "path", path)
		} else if !errors.Is(err, ffmpeg.ErrToolNotFound) {
			logger.Warn("ffmpeg lookup failed", "error", err)
		}
	}

	conv := ffmpeg.NewConverter(logger)
	conv.Dispatch = fyne.Do

	return &App{
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the application
func (a *App) Run() {
	a.fyneApp = app.NewWithID("com.ffconvert")
	a.window = a.fyneApp.NewWindow("FFmpeg Converter")
	a.window.Resize(fyne.NewSize(420, 220))
	a.window.SetFixedSize(true)

	content := a.createConvertForm()
	a.window.SetMainMenu(a.createMainMenu())
	a.window.SetContent(content)
	a.window.SetOnClosed(func() {
		if err := a.cfg.Save(); err != nil {
			a.logger.Error("could not save settings", "error", err)
		}
	})

	a.window.ShowAndRun()
}

// createMainMenu builds File and Edit menus and registers their
// conversion-triggering items with the guard
func (a *App) createMainMenu() *fyne.MainMenu {
	openItem := fyne.NewMenuItem("Open...", a.chooseInput)
	exitItem := fyne.NewMenuItem("Exit", func() {
		a.fyneApp.Quit()
	})
	exitItem.IsQuit = true
	setToolItem := fyne.NewMenuItem("Set FFmpeg Tool...", a.chooseTool)

	a.mainMenu = fyne.NewMainMenu(
		fyne.NewMenu("File", openItem, fyne.NewMenuItemSeparator(), exitItem),
		fyne.NewMenu("Edit", setToolItem),
	)
	a.guard.addMenuItems(a.mainMenu, openItem, setToolItem)
	return a.mainMenu
}

// showError displays an error dialog
func (a *App) showError(title, message string) {
	a.showMessage(title, message)
}

// showInfo displays an info dialog
func (a *App) showInfo(title, message string) {
	a.showMessage(title, message)
}

func (a *App) showMessage(title, message string) {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	popup := a.fyneApp.NewWindow(title)
	popup.SetContent(container.NewVBox(
		label,
		widget.NewButton("OK", func() {
			popup.Close()
		}),
	))
	popup.Resize(fyne.NewSize(400, 150))
	popup.Show()
}
