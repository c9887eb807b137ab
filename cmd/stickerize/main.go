// Package main provides the CLI entry point for stickerize.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "stickerize",
		Usage:   l10n.T("Convert animated images into Telegram stickers"),
		Version: version,
		Description: l10n.T("stickerize turns GIF, WebP and AVIF animations into VP9 WebM stickers " +
			"and still images into WebP stickers that fit Telegram's size and duration limits."),
		HideVersion:     true,
		Flags:           globalFlags(),
		Commands:        []*cli.Command{convertCommand(), probeCommand(), versionCommand()},
		ExitErrHandler:  func(*cli.Context, error) {},
		CommandNotFound: commandNotFound,
	}
}

func commandNotFound(c *cli.Context, name string) {
	fmt.Fprintln(c.App.ErrWriter, l10n.F("Unknown command %q", name))
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML configuration file"),
			EnvVars:  []string{"STICKERIZE_CONFIG"},
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg",
			Usage:    l10n.T("Path to the ffmpeg executable (falls back to FFMPEG_PATH, then PATH)"),
			Category: l10n.T("Tools"),
		},
		&cli.StringFlag{
			Name:     "webpmux",
			Usage:    l10n.T("Path to the webpmux executable (falls back to WEBPMUX_PATH, then PATH)"),
			Category: l10n.T("Tools"),
		},
		&cli.StringFlag{
			Name:     "static-encoder",
			Usage:    l10n.T("Still image encoder (auto, ffmpeg, native)"),
			Category: l10n.T("Processing"),
		},
		&cli.IntFlag{
			Name:     "workers",
			Aliases:  []string{"w"},
			Usage:    l10n.T("Decode worker slots shared by all files (0 = number of CPUs)"),
			Category: l10n.T("Processing"),
		},
		&cli.StringFlag{
			Name:     "temp-dir",
			Usage:    l10n.T("Root directory for staging areas"),
			Category: l10n.T("Processing"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.StringFlag{
			Name:     "log-format",
			Usage:    l10n.T("Log format (console, hclog, json)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Usage:    l10n.T("Enable debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},
	}
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Usage:   l10n.T("Sticker kind (regular, emoji)"),
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     l10n.T("Convert images into stickers"),
		ArgsUsage: "<input>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   l10n.T("Output file path (single input only)"),
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"d"},
				Usage:   l10n.T("Output directory (default: next to each input)"),
			},
			kindFlag(),
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   l10n.T("Files converted concurrently (0 = number of CPUs)"),
			},
			&cli.StringFlag{
				Name:  "summary",
				Usage: l10n.T("Write a Markdown summary of the conversions to this file"),
			},
		},
		Action: runConvert,
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Print the detected format, frame timing and encode plan as JSON"),
		ArgsUsage: "<input>",
		Flags:     []cli.Flag{kindFlag()},
		Action:    runProbe,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("stickerize version %s", version))
			return nil
		},
	}
}
