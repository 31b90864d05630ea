package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ffconvert/config"
	"ffconvert/ffmpeg"
)

type rootOptions struct {
	configPath string
	debug      bool
}

type convertOptions struct {
	format     string
	tool       string
	noProgress bool
}

func newRootCmd() *cobra.Command {
	var root rootOptions

	cmd := &cobra.Command{
		Use:           "ffconvert",
		Short:         "Convert video files with ffmpeg",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&root.configPath, "config", "", "Settings file (default: user config dir)")
	cmd.PersistentFlags().BoolVar(&root.debug, "debug", false, "Log every line of tool output")

	cmd.AddCommand(
		newConvertCmd(&root),
		newFormatsCmd(),
		newSetToolCmd(&root),
	)
	return cmd
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) settingsPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.Path()
}

func (o *rootOptions) loadConfig() (*config.Config, string, error) {
	path, err := o.settingsPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a video next to the original as <name>_output.<format>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return err
			}

			tool := opts.tool
			if tool == "" {
				tool = cfg.FFmpegPath
			}
			if tool == "" {
				if tool, err = ffmpeg.Locate(); err != nil {
					return fmt.Errorf("no ffmpeg configured; run 'ffconvert set-tool <path>' or pass --tool: %w", err)
				}
			}

			format := opts.format
			if format == "" {
				format = cfg.LastFormat
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runConvert(ctx, cmd.OutOrStdout(), root.logger(cmd.ErrOrStderr()),
				ffmpeg.NewRequest(tool, args[0], format), !opts.noProgress)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (default: last used, mp4)")
	cmd.Flags().StringVar(&opts.tool, "tool", "", "Path to the ffmpeg executable (default: configured or found)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress bar")
	return cmd
}

// runConvert performs one conversion, drawing a progress bar on out
func runConvert(ctx context.Context, out io.Writer, logger *slog.Logger, req ffmpeg.Request, showProgress bool) error {
	var onProgress func(int)
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("Converting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(false),
		)
		onProgress = func(percent int) {
			_ = bar.Set(percent)
		}
	}

	res := ffmpeg.NewConverter(logger).Convert(ctx, req, onProgress)
	if bar != nil {
		_ = bar.Clear()
	}

	if res.OK() {
		color.New(color.FgGreen).Fprintf(out, "Conversion completed: %s\n", res.OutputPath)
		return nil
	}
	return describeFailure(res)
}

func describeFailure(res ffmpeg.Result) error {
	var msg string
	switch res.Reason {
	case ffmpeg.ToolMissing:
		msg = "ffmpeg executable not found or not executable"
	case ffmpeg.InputMissing:
		msg = "input file not found"
	case ffmpeg.FormatMissing:
		msg = "unknown output format; see 'ffconvert formats'"
	case ffmpeg.OutputAlreadyExists:
		msg = "output already exists: " + res.OutputPath
	case ffmpeg.OutputNotProduced:
		msg = fmt.Sprintf("conversion failed, output file not found (exit code %d)", res.ExitCode)
	default:
		msg = "conversion failed: " + res.Reason.String()
	}
	if res.Err != nil {
		return fmt.Errorf("%s: %w", msg, res.Err)
	}
	return errors.New(msg)
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported output formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range ffmpeg.Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), f.Label())
			}
		},
	}
}

func newSetToolCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-tool <path>",
		Short: "Remember the ffmpeg executable to use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Later runs may start anywhere, so store the path absolute.
			tool, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}
			if !ffmpeg.ToolUsable(tool) {
				return fmt.Errorf("%s is not an executable file", args[0])
			}
			cfg, path, err := root.loadConfig()
			if err != nil {
				return err
			}
			cfg.FFmpegPath = tool
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "ffmpeg path set to %s\n", tool)
			return nil
		},
	}
}
