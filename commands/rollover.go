package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/uhppoted/uhppoted-app-rollover/rollover"
)

var RolloverCmd = Rollover{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		apikey:      DEFAULT_APIKEY,
		debug:       false,
	},

	month:   0,
	workers: rollover.DefaultWorkers,
	timeout: 0,
	report:  "",
	strict:  false,
}

type Rollover struct {
	command
	month   int
	workers int
	timeout time.Duration
	report  string
	strict  bool
}

func (cmd *Rollover) Name() string {
	return "rollover"
}

func (cmd *Rollover) Description() string {
	return "Copies last month's spreadsheet to a new spreadsheet for this month and updates the month-end cells on every tab"
}

func (cmd *Rollover) Usage() string {
	return "[--override-month <1-12>] [--report <file>]"
}

func (cmd *Rollover) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] rollover [options]\n", APP)
	fmt.Println()
	fmt.Println("  Finds the previous month's spreadsheet in Google Drive, copies it to a new spreadsheet titled")
	fmt.Println("  with the current month and updates the month-end cells on every tab of the copy")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s rollover\n", APP)
	fmt.Printf("    %s --debug rollover --override-month 1 --report rollover.tsv\n", APP)
	fmt.Printf(`    %s rollover --credentials "credentials.json" --apikey "apikey.json" --workers 4 --strict`+"\n", APP)
	fmt.Println()
}

func (cmd *Rollover) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("rollover")

	flagset.IntVar(&cmd.month, "override-month", cmd.month, "Override the month (1-12). Defaults to the current month")
	flagset.IntVar(&cmd.workers, "workers", cmd.workers, "Maximum number of tabs updated concurrently")
	flagset.DurationVar(&cmd.timeout, "timeout", cmd.timeout, "Optional time limit for updating the tabs e.g. 5m. Defaults to no limit")
	flagset.StringVar(&cmd.report, "report", cmd.report, "Optional TSV or .xlsx file for the per-tab rollover report")
	flagset.BoolVar(&cmd.strict, "strict", cmd.strict, "Returns an error if any tab could not be updated")

	return flagset
}

func (cmd *Rollover) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if cmd.month < 0 || cmd.month > 12 {
		return fmt.Errorf("invalid --override-month %v - expected a month in the range 1-12", cmd.month)
	}

	if cmd.workers < 1 {
		return fmt.Errorf("invalid --workers %v - expected at least 1", cmd.workers)
	}

	apikey, err := loadAPIKey(cmd.apikey)
	if err != nil {
		return err
	}

	run := rollover.NewRun(time.Now(), cmd.month, cmd.workers, cmd.timeout, cmd.debug)

	if cmd.debug {
		debugf("%v  period:%v  previous:%s  current:%s  workers:%v", run.ID, run.Period, run.Period.PreviousLabel(), run.Period.Label(), run.Workers)
	}

	// ... authorise
	ctx := context.Background()

	client, err := authorize(ctx, cmd.credentials, DRIVE, cmd.tokenDir())
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	gdrive, gsheets, err := newGoogle(ctx, client, apikey)
	if err != nil {
		return err
	}

	// ... rollover
	summary, err := rollover.Rollover(ctx, run, gdrive, gsheets)
	if err != nil {
		return err
	}

	infof("%v  rolled over spreadsheet %s to '%s' (%s)", run.ID, summary.Source, summary.Title, summary.Spreadsheet)
	infof("%v  tabs:%v  updated:%v  failed:%v", run.ID, len(summary.Results), summary.Succeeded(), summary.Failed())

	if cmd.report != "" {
		if err := writeReport(cmd.report, summary); err != nil {
			return err
		}

		infof("%v  saved rollover report to %s", run.ID, cmd.report)
	}

	if cmd.strict && summary.Failed() > 0 {
		return fmt.Errorf("%v of %v tabs could not be updated", summary.Failed(), len(summary.Results))
	}

	return nil
}
