package rollover

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/api/drive/v3"
)

func TestLocate(t *testing.T) {
	gdrive := fakeDrive{
		files: []*drive.File{
			{Id: "1BxiMVs0XRA5nFMd", Name: "สค.67"},
			{Id: "1FWK8GHbuH2k0Xbq", Name: "กย.67"},
		},
	}

	id, err := Locate(context.Background(), &gdrive, "กย.67")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if id != "1FWK8GHbuH2k0Xbq" {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", "1FWK8GHbuH2k0Xbq", id)
	}
}

func TestLocateWithDuplicates(t *testing.T) {
	gdrive := fakeDrive{
		files: []*drive.File{
			{Id: "1FWK8GHbuH2k0Xbq", Name: "กย.67"},
			{Id: "1Qm7uBg9jXhCz4aL", Name: "กย.67"},
		},
	}

	id, err := Locate(context.Background(), &gdrive, "กย.67")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if id != "1FWK8GHbuH2k0Xbq" {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", "1FWK8GHbuH2k0Xbq", id)
	}
}

func TestLocateWithNoMatch(t *testing.T) {
	gdrive := fakeDrive{
		files: []*drive.File{
			{Id: "1BxiMVs0XRA5nFMd", Name: "สค.67"},
		},
	}

	if _, err := Locate(context.Background(), &gdrive, "กย.67"); !errors.Is(err, ErrNoSpreadsheet) {
		t.Errorf("Expected ErrNoSpreadsheet, got:%v", err)
	}
}

func TestLocateWithDriveError(t *testing.T) {
	gdrive := fakeDrive{
		err: errors.New("403 Forbidden"),
	}

	if _, err := Locate(context.Background(), &gdrive, "กย.67"); err == nil || errors.Is(err, ErrNoSpreadsheet) {
		t.Errorf("Expected Drive error, got:%v", err)
	}
}

func TestRollover(t *testing.T) {
	gdrive := fakeDrive{
		files: []*drive.File{
			{Id: "1FWK8GHbuH2k0Xbq", Name: "กย.67"},
		},
	}

	gsheets := newFakeSheets("Branch 1", "Branch 2")
	run := Run{ID: "test", Period: october, Workers: 2}

	summary, err := Rollover(context.Background(), &run, &gdrive, gsheets)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if len(gdrive.copied) != 1 || gdrive.copied[0] != "1FWK8GHbuH2k0Xbq" {
		t.Errorf("Incorrect spreadsheet copied - expected:%v, got:%v", "1FWK8GHbuH2k0Xbq", gdrive.copied)
	}

	if summary.Source != "1FWK8GHbuH2k0Xbq" {
		t.Errorf("Incorrect source - expected:%v, got:%v", "1FWK8GHbuH2k0Xbq", summary.Source)
	}

	if summary.Spreadsheet != "copy-of-1FWK8GHbuH2k0Xbq" {
		t.Errorf("Incorrect spreadsheet - expected:%v, got:%v", "copy-of-1FWK8GHbuH2k0Xbq", summary.Spreadsheet)
	}

	if summary.Title != "ตค.67" {
		t.Errorf("Incorrect title - expected:%v, got:%v", "ตค.67", summary.Title)
	}

	if summary.Succeeded() != 2 {
		t.Errorf("Incorrect number of synchronised tabs - expected:%v, got:%v", 2, summary.Succeeded())
	}
}

func TestRolloverWithoutPreviousMonth(t *testing.T) {
	gdrive := fakeDrive{}
	gsheets := newFakeSheets("Branch 1")
	run := Run{ID: "test", Period: october}

	if _, err := Rollover(context.Background(), &run, &gdrive, gsheets); !errors.Is(err, ErrNoSpreadsheet) {
		t.Errorf("Expected ErrNoSpreadsheet, got:%v", err)
	}

	if len(gdrive.copied) != 0 {
		t.Errorf("Unexpected spreadsheet copy")
	}

	if gsheets.writes() != 0 {
		t.Errorf("Unexpected batch update")
	}
}

func TestRolloverWithCopyError(t *testing.T) {
	gdrive := fakeDrive{
		files: []*drive.File{
			{Id: "1FWK8GHbuH2k0Xbq", Name: "กย.67"},
		},
		copyErr: errors.New("403 The user has exceeded their Drive storage quota"),
	}

	gsheets := newFakeSheets("Branch 1", "Branch 2")
	run := Run{ID: "test", Period: october, Workers: 2}

	summary, err := Rollover(context.Background(), &run, &gdrive, gsheets)
	if err == nil {
		t.Errorf("Expected error copying spreadsheet, got:%v", err)
	} else if !errors.Is(err, gdrive.copyErr) {
		t.Errorf("Incorrect error - expected:%v, got:%v", gdrive.copyErr, err)
	}

	if summary != nil {
		t.Errorf("Expected nil summary, got:%v", summary)
	}

	if gsheets.writes() != 0 {
		t.Errorf("Incorrect number of batch updates - expected:%v, got:%v", 0, gsheets.writes())
	}
}

func TestDuplicate(t *testing.T) {
	gdrive := fakeDrive{}

	id, err := Duplicate(context.Background(), &gdrive, "1FWK8GHbuH2k0Xbq", "ตค.67")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if id != "copy-of-1FWK8GHbuH2k0Xbq" {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", "copy-of-1FWK8GHbuH2k0Xbq", id)
	}
}

func TestDuplicateWithNoID(t *testing.T) {
	gdrive := fakeDrive{
		noID: true,
	}

	id, err := Duplicate(context.Background(), &gdrive, "1FWK8GHbuH2k0Xbq", "ตค.67")
	if err == nil {
		t.Errorf("Expected error for copy without ID, got:%v", err)
	}

	if id != "" {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", "", id)
	}
}

func TestRolloverWithCopyWithNoID(t *testing.T) {
	gdrive := fakeDrive{
		files: []*drive.File{
			{Id: "1FWK8GHbuH2k0Xbq", Name: "กย.67"},
		},
		noID: true,
	}

	gsheets := newFakeSheets("Branch 1")
	run := Run{ID: "test", Period: october}

	if summary, err := Rollover(context.Background(), &run, &gdrive, gsheets); err == nil || summary != nil {
		t.Errorf("Expected error and nil summary, got:%v %v", err, summary)
	}

	if gsheets.writes() != 0 {
		t.Errorf("Incorrect number of batch updates - expected:%v, got:%v", 0, gsheets.writes())
	}
}
