package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-app-rollover/rollover"
)

var GetCmd = Get{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		apikey:      DEFAULT_APIKEY,
		debug:       false,
	},

	url:  "",
	file: "rollover " + time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	url  string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the month-end cells from every tab of a Google Sheets spreadsheet and stores them to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "--url <url> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the month-end cells from every tab of a Google Sheets spreadsheet to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s --debug get --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`+"\n", APP)
	fmt.Println(`                                 --file "example.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to 'rollover <yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	spreadsheet, err := spreadsheetID(cmd.url)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  file:%s", spreadsheet, cmd.file)
	}

	apikey, err := loadAPIKey(cmd.apikey)
	if err != nil {
		return err
	}

	// ... authorise
	ctx := context.Background()

	client, err := authorize(ctx, cmd.credentials, DRIVE, cmd.tokenDir())
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	_, google, err := newGoogle(ctx, client, apikey)
	if err != nil {
		return err
	}

	tabs, cells, err := cmd.get(ctx, google, spreadsheet)
	if err != nil {
		return err
	}

	if err := save(cmd.file, func(f *os.File) error {
		if err := cellsToTSV(f, tabs, cells); err != nil {
			return fmt.Errorf("error creating TSV file (%w)", err)
		}

		return nil
	}); err != nil {
		return err
	}

	infof("Retrieved month-end cells for %v tabs to file %s", len(tabs), cmd.file)

	return nil
}

func (cmd *Get) get(ctx context.Context, google rollover.Sheets, spreadsheet string) ([]string, map[string][]*sheets.ValueRange, error) {
	tabs, err := google.Tabs(ctx, spreadsheet)
	if err != nil {
		return nil, nil, err
	} else if len(tabs) == 0 {
		return nil, nil, fmt.Errorf("%w (spreadsheet ID %s)", rollover.ErrNoTabs, spreadsheet)
	}

	cells := map[string][]*sheets.ValueRange{}
	for _, tab := range tabs {
		ranges, err := google.BatchGet(ctx, spreadsheet, rollover.Ranges(tab))
		if err != nil {
			return nil, nil, fmt.Errorf("unable to retrieve cells for tab '%s' (%w)", tab, err)
		}

		cells[tab] = ranges
	}

	return tabs, cells, nil
}

func spreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}
