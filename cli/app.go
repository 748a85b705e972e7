package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:            "otg",
	Usage:           "generate time-optimal acceleration limited trajectories",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:  flagLogFile,
			Usage: "write logs as json lines to `FILE` instead of stderr",
		},
	},
	Before: setupLogging,
	After:  closeLogging,
	Commands: []*cli.Command{
		{
			Name:  "sample",
			Usage: "write the sample scenario to a file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagOutput,
					Aliases: []string{"o"},
					Usage:   "write the scenario to `FILE`",
					Value:   "sample.json",
				},
				&cli.BoolFlag{
					Name:  flagForce,
					Usage: "overwrite an existing file",
				},
			},
			Action: SampleAction,
		},
		{
			Name:   "schema",
			Usage:  "print the json schema of scenario files",
			Action: SchemaAction,
		},
		{
			Name:  "run",
			Usage: "simulate a scenario cycle by cycle and print its states of motion",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  flagEvery,
					Usage: "print every `N`th cycle; by default about twenty rows are printed",
				},
			}, scenarioFlags...),
			Action: RunAction,
		},
		{
			Name:  "plot",
			Usage: "simulate a scenario and plot it to a png",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    flagOutput,
					Aliases: []string{"o"},
					Usage:   "write the plot to `FILE`; defaults to <quantity>.png",
				},
				&cli.StringFlag{
					Name:  flagQuantity,
					Value: quantityPosition,
					Usage: "quantity to plot: position, velocity or acceleration",
				},
			}, scenarioFlags...),
			Action: PlotAction,
		},
		{
			Name:  "bench",
			Usage: "measure the time a trajectory takes to compute",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  flagIterations,
					Value: 1000,
					Usage: "number of trajectories to compute",
				},
				&cli.BoolFlag{
					Name:  flagHistogram,
					Usage: "print a histogram of the computation times",
				},
			}, scenarioFlags...),
			Action: BenchAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
