// Package rollover implements the monthly rollover of a templated spreadsheet: the
// previous month's spreadsheet is copied to a new spreadsheet titled with the current
// month and a fixed set of cells is updated on every tab.
package rollover

import (
	"context"
)

// Rollover finds last month's spreadsheet, copies it to this month's title and
// synchronises every tab of the copy. An error is returned only if the rollover could
// not be started; per-tab failures are reported in the Summary.
func Rollover(ctx context.Context, run *Run, gdrive Drive, gsheets Sheets) (*Summary, error) {
	previous := run.Period.PreviousLabel()
	current := run.Period.Label()

	infof("%v  rolling over '%s' to '%s' (%v)", run.ID, previous, current, run.Period)

	source, err := Locate(ctx, gdrive, previous)
	if err != nil {
		return nil, err
	}

	spreadsheet, err := Duplicate(ctx, gdrive, source, current)
	if err != nil {
		return nil, err
	}

	summary, err := Orchestrate(ctx, run, gsheets, spreadsheet)
	if err != nil {
		return nil, err
	}

	summary.Source = source
	summary.Title = current

	return summary, nil
}
