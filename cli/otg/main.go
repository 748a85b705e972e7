// Package main is the otg command line tool.
package main

import (
	"os"

	"go.viam.com/otg/cli"
	"go.viam.com/otg/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("otg").Error(err)
		os.Exit(1)
	}
}
