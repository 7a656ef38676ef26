package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-app-rollover/rollover"
)

// gdrive implements rollover.Drive with the Google Drive v3 API.
type gdrive struct {
	service *drive.Service
	key     string
}

// gsheets implements rollover.Sheets with the Google Sheets v4 API.
type gsheets struct {
	service *sheets.Service
	key     string
}

var (
	_ rollover.Drive  = (*gdrive)(nil)
	_ rollover.Sheets = (*gsheets)(nil)
)

func newGoogle(ctx context.Context, client *http.Client, apikey string, opts ...option.ClientOption) (*gdrive, *gsheets, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	d, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create new Google Drive client (%w)", err)
	}

	s, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create new Google Sheets client (%w)", err)
	}

	return &gdrive{service: d, key: apikey}, &gsheets{service: s, key: apikey}, nil
}

func (g *gdrive) Find(ctx context.Context, name string) ([]*drive.File, error) {
	query := fmt.Sprintf("name = '%s'", escape(name))
	files := []*drive.File{}
	page := ""

	for {
		call := g.service.Files.List().Q(query).Fields("nextPageToken, files(id, name)").Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		list, err := call.Do(options(g.key)...)
		if err != nil {
			return nil, transport("search files", err)
		}

		files = append(files, list.Files...)

		if page = list.NextPageToken; page == "" {
			break
		}
	}

	return files, nil
}

func (g *gdrive) Copy(ctx context.Context, fileID string, name string) (*drive.File, error) {
	file, err := g.service.Files.Copy(fileID, &drive.File{Name: name}).Fields("id, name").Context(ctx).Do(options(g.key)...)
	if err != nil {
		return nil, transport("copy file", err)
	}

	return file, nil
}

func (g *gsheets) Tabs(ctx context.Context, spreadsheetID string) ([]string, error) {
	spreadsheet, err := g.service.Spreadsheets.Get(spreadsheetID).
		IncludeGridData(false).
		Fields("sheets.properties.title").
		Context(ctx).
		Do(options(g.key)...)
	if err != nil {
		return nil, transport("fetch spreadsheet", err)
	}

	tabs := []string{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet != nil && sheet.Properties != nil {
			tabs = append(tabs, sheet.Properties.Title)
		}
	}

	return tabs, nil
}

func (g *gsheets) BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([]*sheets.ValueRange, error) {
	response, err := g.service.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(ranges...).Context(ctx).Do(options(g.key)...)
	if err != nil {
		return nil, transport("retrieve values", err)
	}

	return response.ValueRanges, nil
}

func (g *gsheets) BatchUpdate(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange) error {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}

	if _, err := g.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, &rq).Context(ctx).Do(options(g.key)...); err != nil {
		return transport("update values", err)
	}

	return nil
}

func options(apikey string) []googleapi.CallOption {
	if apikey == "" {
		return nil
	}

	return []googleapi.CallOption{googleapi.QueryParameter("key", apikey)}
}

// transport logs the HTTP status and body of a failed Google API request.
func transport(operation string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		errorf("%v failed. Status code: %v Body: %v", operation, gerr.Code, strings.TrimSpace(gerr.Body))
		return fmt.Errorf("%v: HTTP %v (%w)", operation, gerr.Code, err)
	}

	errorf("%v failed (%v)", operation, err)

	return fmt.Errorf("%v (%w)", operation, err)
}

// escape quotes a value for use in a Drive search query.
func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
}
