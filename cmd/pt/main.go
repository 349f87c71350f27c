package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/pivotaltools/pt/internal/cli"
	"github.com/pivotaltools/pt/internal/config"
	"github.com/pivotaltools/pt/internal/tracker"
)

const quickStart = `pt - Pivotal Tracker from the command line

START HERE:
  pt --add-story --story "Fix the build" --bug

Other useful invocations:
  pt --list-projects
  pt --show-story --story-id 123 --show-notes
  pt --search "state:started"

Run 'pt --help' for every flag, or 'pt --man' for the full manual.
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	var c cli.CLI
	parser, err := kong.New(&c,
		kong.Name("pt"),
		kong.Description("A command-line interface to the Pivotal Tracker API."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		panic(err)
	}
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pt: %v\n", err)
		os.Exit(1)
	}

	if c.Man {
		fmt.Print(cli.Manual)
		return
	}

	log := zap.NewNop().Sugar()
	if c.Verbose {
		if zl, err := zap.NewDevelopment(); err == nil {
			defer zl.Sync()
			log = zl.Sugar()
		}
	}

	// A broken config file is only fatal for actions that need the API;
	// dispatch decides.
	settings, cfgErr := config.Load()

	globals := &cli.Globals{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Settings:  settings,
		ConfigErr: cfgErr,
		Log:       log,
	}
	if settings != nil {
		timeout := settings.RequestTimeout()
		if c.Timeout != nil {
			timeout = *c.Timeout
		}
		globals.API = tracker.NewClient(settings.General.APIURL, settings.General.APIKey, timeout, log)
	}

	os.Exit(cli.Run(&c, globals))
}
