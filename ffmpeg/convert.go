package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxLineSize bounds a single line of tool output
const maxLineSize = 1024 * 1024

// waitDelay bounds how long Wait keeps reading output after the tool exits,
// in case a grandchild still holds the pipe open.
const waitDelay = 5 * time.Second

// Converter runs the external tool and reports progress.
// A Converter keeps no state between calls; it is safe to share, but callers
// that want one conversion at a time must enforce that themselves.
type Converter struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// Dispatch runs progress callbacks on the caller's execution context,
	// e.g. fyne.Do. It must run the functions it is given one at a time and
	// in order. Nil runs callbacks directly on the output reader goroutine.
	Dispatch func(func())

	// command creates the child process; tests replace it to observe launches.
	command func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewConverter creates a Converter that logs to logger
func NewConverter(logger *slog.Logger) *Converter {
	return &Converter{Logger: logger}
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Converter) dispatch(fn func()) {
	if c.Dispatch == nil {
		fn()
		return
	}
	c.Dispatch(fn)
}

func (c *Converter) newCommand(ctx context.Context, name string, arg ...string) *exec.Cmd {
	if c.command != nil {
		return c.command(ctx, name, arg...)
	}
	return exec.CommandContext(ctx, name, arg...)
}

// Check validates a request without starting anything. Checks run in order
// and the first failing one decides the reason; Succeeded means the request
// may be run.
func Check(req Request) Reason {
	if !ToolUsable(req.ToolPath) {
		return ToolMissing
	}
	if !fileExists(req.InputPath) {
		return InputMissing
	}
	if _, ok := ParseFormat(req.Format); !ok {
		return FormatMissing
	}
	if pathExists(req.OutputPath()) {
		return OutputAlreadyExists
	}
	return Succeeded
}

// Convert runs one conversion and blocks until the tool has exited.
//
// onProgress, if not nil, receives a percentage for every usable progress
// sample, in output order, through Dispatch. Every callback has run by the
// time Convert returns. Convert must therefore not be called from the
// context Dispatch schedules onto; UIs call it from a goroutine.
//
// The result is decided by whether the output file exists afterwards; the
// tool's exit code is reported in Result.ExitCode but not otherwise used.
func (c *Converter) Convert(ctx context.Context, req Request, onProgress func(percent int)) Result {
	log := c.logger().With("conversion", uuid.NewString())

	if reason := Check(req); reason != Succeeded {
		log.Info("conversion refused", "reason", reason, "tool", req.ToolPath, "input", req.InputPath, "format", req.Format)
		outputPath := ""
		if reason == OutputAlreadyExists {
			outputPath = req.OutputPath()
		}
		return failure(reason, outputPath, nil)
	}

	format, _ := ParseFormat(req.Format)
	outputPath := DeriveOutputPath(req.InputPath, string(format))

	cmd := c.newCommand(ctx, req.ToolPath, BuildArgs(req.InputPath, outputPath)...)
	hideConsole(cmd)
	cmd.WaitDelay = waitDelay

	// stdout and stderr share one writer, so the tool's lines arrive
	// interleaved in the order it wrote them.
	pr, pw := io.Pipe()
	defer pr.Close()
	cmd.Stdout = pw
	cmd.Stderr = pw

	// The tool gets a stdin it can poll but nothing is ever written to it.
	// Wait closes it.
	if _, err := cmd.StdinPipe(); err != nil {
		pw.Close()
		log.Error("conversion failed", "error", err)
		return failure(ProcessFailed, outputPath, fmt.Errorf("stdin pipe: %w", err))
	}

	var pending sync.WaitGroup
	emit := func(percent int) {
		if onProgress == nil {
			return
		}
		pending.Add(1)
		c.dispatch(func() {
			defer pending.Done()
			onProgress(percent)
		})
	}

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		readOutput(pr, log, emit)
	}()

	log.Info("conversion started", "tool", req.ToolPath, "input", req.InputPath, "output", outputPath)

	if err := cmd.Start(); err != nil {
		pw.Close()
		<-readerDone
		log.Error("conversion failed", "error", err)
		return failure(ProcessFailed, outputPath, fmt.Errorf("start %s: %w", req.ToolPath, err))
	}

	waitErr := cmd.Wait()
	pw.Close()
	<-readerDone
	pending.Wait()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	// Only a run the context actually cut short counts as cancelled; a tool
	// that finished on its own is judged by its output like any other run.
	if waitErr != nil && ctx.Err() != nil {
		err := ctx.Err()
		log.Warn("conversion cancelled", "error", err)
		// Check saw no file here before the run, so anything present is a
		// partial write from the killed tool.
		if rmErr := os.Remove(outputPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Warn("could not remove partial output", "output", outputPath, "error", rmErr)
		}
		result := failure(ProcessFailed, outputPath, fmt.Errorf("conversion cancelled: %w", err))
		result.ExitCode = exitCode
		return result
	}

	if waitErr != nil {
		log.Warn("tool exited with error", "error", waitErr, "exit_code", exitCode)
	}

	if !pathExists(outputPath) {
		log.Error("conversion failed", "reason", OutputNotProduced, "exit_code", exitCode)
		result := failure(OutputNotProduced, outputPath, waitErr)
		result.ExitCode = exitCode
		return result
	}

	log.Info("conversion finished", "output", outputPath, "exit_code", exitCode)
	return Result{
		Reason:     Succeeded,
		OutputPath: outputPath,
		ExitCode:   exitCode,
	}
}

// ConvertAsync runs Convert on a new goroutine. The channel receives exactly
// one Result and is then closed.
func (c *Converter) ConvertAsync(ctx context.Context, req Request, onProgress func(percent int)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- c.Convert(ctx, req, onProgress)
	}()
	return ch
}

// readOutput drains r line by line until EOF, emitting a percentage for
// every line that carries a usable progress sample.
func readOutput(r io.Reader, log *slog.Logger, emit func(int)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanOutputLines)
	for scanner.Scan() {
		line := scanner.Text()
		log.Debug("tool output", "line", line)
		if percent, ok := ParseProgress(line); ok {
			emit(percent)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("reading tool output", "error", err)
		// keep draining so the tool never blocks on a full pipe
		_, _ = io.Copy(io.Discard, r)
	}
}
