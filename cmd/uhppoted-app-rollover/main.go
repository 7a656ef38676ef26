package main

import (
	"flag"
	"fmt"
	"os"

	lib "github.com/uhppoted/uhppoted-lib/command"

	"github.com/uhppoted/uhppoted-app-rollover/commands"
)

var cli = []lib.Command{
	&commands.RolloverCmd,
	&commands.GetCmd,
	&commands.AuthoriseCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = lib.NewHelp(commands.APP, cli, nil)

func main() {
	commands.Configure()

	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := lib.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		fmt.Printf("\nERROR: %v\n\n", err)
		os.Exit(1)
	}
}
