package rollover

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Summary collects the outcome of a rollover. Results are in the same order as the
// spreadsheet tabs.
type Summary struct {
	RunID       string
	Period      Period
	Source      string
	Spreadsheet string
	Title       string
	Results     []Result
}

func (s Summary) Succeeded() int {
	count := 0
	for _, r := range s.Results {
		if r.OK() {
			count++
		}
	}

	return count
}

func (s Summary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

// Orchestrate synchronises every tab of the spreadsheet on a bounded pool of workers and
// waits for all of them to finish. A failed tab does not stop the remaining tabs. The
// only errors returned are those that prevent any tab from being processed.
func Orchestrate(ctx context.Context, run *Run, gsheets Sheets, spreadsheetID string) (*Summary, error) {
	tabs, err := gsheets.Tabs(ctx, spreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve tabs for spreadsheet %s (%w)", spreadsheetID, err)
	} else if len(tabs) == 0 {
		return nil, fmt.Errorf("%w (spreadsheet ID %s)", ErrNoTabs, spreadsheetID)
	}

	if run.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, run.Timeout)
		defer cancel()
	}

	workers := run.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	results := make([]Result, len(tabs))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, tab := range tabs {
		i, tab := i, tab
		g.Go(func() error {
			results[i] = Synchronise(ctx, run, gsheets, spreadsheetID, tab)
			if results[i].OK() {
				infof("%v  finished processing tab '%s'", run.ID, tab)
			}

			return nil
		})
	}

	g.Wait()

	return &Summary{
		RunID:       run.ID,
		Period:      run.Period,
		Spreadsheet: spreadsheetID,
		Results:     results,
	}, nil
}
