package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fremen-fi/wavmerge/internal/audio"
	"github.com/fremen-fi/wavmerge/internal/config"
	"github.com/fremen-fi/wavmerge/internal/ffmpeg"
	"github.com/fremen-fi/wavmerge/internal/logging"
	"github.com/fremen-fi/wavmerge/internal/merge"
)

var (
	ffmpegFlag   string
	logLevelFlag string

	mergeOutput  string
	mergeFormat  string
	mergeBitrate int
)

var rootCmd = &cobra.Command{
	Use:   "wavmerge",
	Short: "Join WAV files into a single WAV or MP3 file.",
	Long: `wavmerge joins WAV files in a chosen order into one WAV (stream copy) or MP3 file.
Without a subcommand it opens the WAV Merger window.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setup(true)
		if err != nil {
			return err
		}
		defer logging.Sync()
		return runGUI(settings)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge -o OUTPUT FILE...",
	Short: "Merge files without opening the window",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setup(false)
		if err != nil {
			return err
		}
		defer logging.Sync()

		bitrate := mergeBitrate
		if !cmd.Flags().Changed("bitrate") {
			bitrate = settings.DefaultBitrate
		}
		format, err := config.ParseFormat(mergeFormat, bitrate)
		if err != nil {
			return err
		}

		runner := ffmpeg.New(settings.FFmpegPath, settings.FFprobePath)
		if err := runner.Check(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		res, err := runMergeTUI(ctx, merge.New(runner, audio.NewReader(runner)), args, format, mergeOutput)
		if err != nil {
			var toolErr *merge.ToolError
			if errors.As(err, &toolErr) {
				fmt.Fprint(cmd.ErrOrStderr(), toolErr.Diagnostic)
			}
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe FILE...",
	Short: "Print the properties of audio files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setup(false)
		if err != nil {
			return err
		}
		defer logging.Sync()

		reader := audio.NewReader(ffmpeg.New(settings.FFmpegPath, settings.FFprobePath))
		failed := 0
		for i, path := range args {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			m, err := reader.Read(cmd.Context(), path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}
			fmt.Fprint(cmd.OutOrStdout(), audio.Report(m))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files could not be read", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ffmpegFlag, "ffmpeg", "", "ffmpeg binary (ffprobe is expected next to it)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")

	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output file")
	mergeCmd.Flags().StringVar(&mergeFormat, "format", "wav", "output format: wav or mp3")
	mergeCmd.Flags().IntVar(&mergeBitrate, "bitrate", config.DefaultBitrate, "MP3 bitrate in kbps (128, 192, 256 or 320)")
	_ = mergeCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(mergeCmd, probeCmd)
}

// setup loads settings, applies command line overrides and starts logging.
func setup(console bool) (config.Settings, error) {
	settings := config.Load()
	if ffmpegFlag != "" {
		settings.FFmpegPath = ffmpegFlag
		if os.Getenv("WAVMERGE_FFPROBE") == "" {
			settings.FFprobePath = config.ProbePathFor(ffmpegFlag)
		}
	}
	if logLevelFlag != "" {
		settings.LogLevel = strings.ToLower(logLevelFlag)
	}

	err := logging.Init(logging.Config{
		Level:      logging.Level(settings.LogLevel),
		OutputPath: settings.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
		Console:    console,
	})
	if err != nil {
		return settings, fmt.Errorf("starting logger: %w", err)
	}
	return settings, nil
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
