package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-app-rollover/rollover"
)

// cellsToTSV writes the rollover cells of each tab as one TSV row per tab. The
// ranges for a tab are expected in rollover.Cells() order.
func cellsToTSV(f io.Writer, tabs []string, cells map[string][]*sheets.ValueRange) error {
	if len(tabs) == 0 {
		return fmt.Errorf("Empty spreadsheet")
	}

	columns := rollover.Cells()
	header := append([]string{"Tab"}, columns...)

	records := [][]string{}
	for _, tab := range tabs {
		record := []string{clean(tab)}
		ranges := cells[tab]

		for i := range columns {
			v := ""
			if i < len(ranges) {
				v = cell(ranges[i])
			}

			record = append(record, clean(v))
		}

		records = append(records, record)
	}

	return writeTSV(f, header, records)
}

// summaryToTSV writes one TSV row per tab with the outcome of a rollover.
func summaryToTSV(f io.Writer, summary *rollover.Summary) error {
	header, records := summaryTable(summary)

	return writeTSV(f, header, records)
}

func summaryTable(summary *rollover.Summary) ([]string, [][]string) {
	header := []string{"Run", "Period", "Spreadsheet", "Title", "Tab", "Status", "Error"}
	records := [][]string{}

	for _, r := range summary.Results {
		status := "ok"
		errmsg := ""
		if !r.OK() {
			status = "failed"
			errmsg = r.Err.Error()
		}

		records = append(records, []string{
			summary.RunID,
			summary.Period.String(),
			summary.Spreadsheet,
			summary.Title,
			clean(r.Tab),
			status,
			clean(errmsg),
		})
	}

	return header, records
}

func writeTSV(f io.Writer, header []string, records [][]string) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func cell(vr *sheets.ValueRange) string {
	if vr != nil && len(vr.Values) > 0 && len(vr.Values[0]) > 0 && vr.Values[0][0] != nil {
		return fmt.Sprintf("%v", vr.Values[0][0])
	}

	return ""
}

func clean(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
