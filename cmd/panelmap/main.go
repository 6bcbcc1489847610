// Package main is the panelmap command: it turns LED controller configs into
// per-title control panel layouts.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfigDir = "config-dir"
	flagDebug     = "debug"
	flagPlatform  = "platform"
	flagOut       = "out"
	flagJobs      = "jobs"
	flagStrict    = "strict"
	flagSize      = "size"
	flagInterval  = "interval"
)

func newApp() *cli.App {
	platformFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    flagPlatform,
			Aliases: []string{"p"},
			Value:   "all",
			Usage:   "comma separated platforms to process: arcade, fbneo, systems or all",
		}
	}
	generateFlags := func() []cli.Flag {
		return []cli.Flag{
			platformFlag(),
			&cli.StringFlag{
				Name:    flagOut,
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "write artifacts under `DIR`",
			},
			&cli.IntFlag{
				Name:    flagJobs,
				Aliases: []string{"j"},
				Usage:   "titles assembled concurrently (default: number of CPUs)",
			},
			&cli.BoolFlag{
				Name:  flagStrict,
				Usage: "stop at the first title that cannot be assembled",
			},
		}
	}

	return &cli.App{
		Name:            "panelmap",
		Usage:           "resolve arcade control panel layouts",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfigDir,
				Aliases: []string{"c"},
				Value:   ".",
				Usage:   "load panelmap.yaml and the sources it names from `DIR`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "write one layout file per title",
				Flags:  generateFlags(),
				Action: generateAction,
			},
			{
				Name:      "show",
				Usage:     "print the layouts of a title",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagPlatform,
						Aliases: []string{"p"},
						Value:   "arcade",
						Usage:   "platform the title belongs to",
					},
					&cli.IntFlag{
						Name:    flagSize,
						Aliases: []string{"s"},
						Usage:   "panel size (2, 4, 6 or 8); all sizes when unset",
					},
				},
				Action: showAction,
			},
			{
				Name:   "validate",
				Usage:  "check the manifest and every source for problems",
				Flags:  []cli.Flag{platformFlag()},
				Action: validateAction,
			},
			{
				Name:  "report",
				Usage: "summarize layout coverage",
				Flags: []cli.Flag{
					platformFlag(),
					&cli.IntFlag{Name: flagJobs, Aliases: []string{"j"}, Usage: "titles assembled concurrently"},
				},
				Action: reportAction,
			},
			{
				Name:  "watch",
				Usage: "regenerate whenever a source changes",
				Flags: append(generateFlags(), &cli.DurationFlag{
					Name:  flagInterval,
					Value: defaultInterval,
					Usage: "wait this long after the last change before regenerating",
				}),
				Action: watchAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
