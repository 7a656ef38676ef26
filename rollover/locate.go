package rollover

import (
	"context"
	"fmt"
)

// Locate returns the ID of the spreadsheet titled 'title'. If more than one file has
// the same title the first one returned by Google Drive is used.
func Locate(ctx context.Context, gdrive Drive, title string) (string, error) {
	files, err := gdrive.Find(ctx, title)
	if err != nil {
		return "", fmt.Errorf("error searching for spreadsheet '%s' (%w)", title, err)
	}

	if len(files) == 0 || files[0] == nil {
		return "", fmt.Errorf("%w '%s'", ErrNoSpreadsheet, title)
	}

	if len(files) > 1 {
		warnf("found %v spreadsheets titled '%s', using %s", len(files), title, files[0].Id)
	}

	infof("found spreadsheet '%s' with ID %s", title, files[0].Id)

	return files[0].Id, nil
}

// Duplicate copies the spreadsheet to a new spreadsheet titled 'title' and returns the
// ID of the copy.
func Duplicate(ctx context.Context, gdrive Drive, spreadsheetID string, title string) (string, error) {
	infof("copying spreadsheet %s to '%s'", spreadsheetID, title)

	file, err := gdrive.Copy(ctx, spreadsheetID, title)
	if err != nil {
		return "", fmt.Errorf("unable to copy spreadsheet %s (%w)", spreadsheetID, err)
	} else if file == nil || file.Id == "" {
		return "", fmt.Errorf("copy of spreadsheet %s returned no ID", spreadsheetID)
	}

	infof("created spreadsheet '%s' with ID %s", title, file.Id)

	return file.Id, nil
}
