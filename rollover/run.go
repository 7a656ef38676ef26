package rollover

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrNoSpreadsheet = errors.New("no spreadsheet matching previous month")
	ErrNoTabs        = errors.New("spreadsheet has no tabs")
)

const DefaultWorkers = 8

// Drive is the subset of the Google Drive API used to find and copy spreadsheets.
type Drive interface {
	Find(ctx context.Context, name string) ([]*drive.File, error)
	Copy(ctx context.Context, fileID string, name string) (*drive.File, error)
}

// Sheets is the subset of the Google Sheets API used to enumerate and update tabs.
type Sheets interface {
	Tabs(ctx context.Context, spreadsheetID string) ([]string, error)
	BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([]*sheets.ValueRange, error)
	BatchUpdate(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange) error
}

// Run holds the values computed once at startup and shared read-only by every
// component for the duration of a rollover.
type Run struct {
	ID      string
	Period  Period
	Workers int
	Timeout time.Duration
	Debug   bool
}

// NewRun initialises the run context for the month-end of 'today' (or the override month).
// A worker count less than 1 is replaced with DefaultWorkers.
func NewRun(today time.Time, override int, workers int, timeout time.Duration, debug bool) *Run {
	if workers < 1 {
		workers = DefaultWorkers
	}

	return &Run{
		ID:      uuid.New().String(),
		Period:  NewPeriod(today, override),
		Workers: workers,
		Timeout: timeout,
		Debug:   debug,
	}
}
