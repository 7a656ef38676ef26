package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/uhppoted/uhppoted-app-rollover/rollover"
)

// writeReport saves the rollover summary as an Excel workbook if the file has an
// .xlsx extension and as a TSV file otherwise.
func writeReport(file string, summary *rollover.Summary) error {
	return save(file, func(f *os.File) error {
		var err error
		if strings.EqualFold(filepath.Ext(file), ".xlsx") {
			err = summaryToXLSX(f, summary)
		} else {
			err = summaryToTSV(f, summary)
		}

		if err != nil {
			return fmt.Errorf("error creating report (%w)", err)
		}

		return nil
	})
}

// save writes a file via a temporary file in the same directory, renamed once the
// write has succeeded, so that a failed write never leaves a partial file. The
// temporary file is created alongside the target because os.Rename cannot move a
// file across filesystems.
func save(file string, write func(f *os.File) error) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".rollover-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

func summaryToXLSX(f *os.File, summary *rollover.Summary) error {
	const sheet = "Rollover"

	header, records := summaryTable(summary)

	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, v := range header {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(sheet, c, v); err != nil {
			return err
		}
	}

	for row, record := range records {
		for col, v := range record {
			c, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := wb.SetCellValue(sheet, c, v); err != nil {
				return err
			}
		}
	}

	if err := wb.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err := wb.WriteTo(f)

	return err
}
