package main

import (
	"log/slog"
	"os"

	"ffconvert/ui"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("FFCONVERT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ui.NewApp(logger).Run()
}
