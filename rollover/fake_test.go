package rollover

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

type fakeDrive struct {
	files   []*drive.File
	err     error
	copyErr error
	noID    bool
	copied  []string
}

func (d *fakeDrive) Find(ctx context.Context, name string) ([]*drive.File, error) {
	if d.err != nil {
		return nil, d.err
	}

	list := []*drive.File{}
	for _, f := range d.files {
		if f.Name == name {
			list = append(list, f)
		}
	}

	return list, nil
}

func (d *fakeDrive) Copy(ctx context.Context, fileID string, name string) (*drive.File, error) {
	if d.copyErr != nil {
		return nil, d.copyErr
	}

	d.copied = append(d.copied, fileID)

	if d.noID {
		return &drive.File{Name: name}, nil
	}

	return &drive.File{Id: "copy-of-" + fileID, Name: name}, nil
}

type fakeSheets struct {
	sync.Mutex
	tabs    []string
	tabsErr error
	cells   map[string]map[string]string
	failGet map[string]bool
	failPut map[string]bool
	updates map[string][]*sheets.ValueRange
}

func newFakeSheets(tabs ...string) *fakeSheets {
	s := fakeSheets{
		tabs:    tabs,
		cells:   map[string]map[string]string{},
		failGet: map[string]bool{},
		failPut: map[string]bool{},
		updates: map[string][]*sheets.ValueRange{},
	}

	for _, tab := range tabs {
		s.cells[tab] = map[string]string{
			"C11": "1,250.00",
			"C12": "380.00",
			"C13": "=C11-C12",
			"C10": "กย.67",
			"I5":  "30/09/67",
			"C5":  "2409007",
		}
	}

	return &s
}

func (s *fakeSheets) Tabs(ctx context.Context, spreadsheetID string) ([]string, error) {
	if s.tabsErr != nil {
		return nil, s.tabsErr
	}

	return s.tabs, nil
}

func (s *fakeSheets) BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([]*sheets.ValueRange, error) {
	s.Lock()
	defer s.Unlock()

	list := []*sheets.ValueRange{}
	for _, r := range ranges {
		tab, cell := split(r)
		tab = strings.ReplaceAll(strings.Trim(tab, "'"), "''", "'")

		if s.failGet[tab] {
			return nil, fmt.Errorf("simulated error retrieving '%s'", tab)
		}

		vr := sheets.ValueRange{
			Range: r,
		}

		if v := s.cells[tab][cell]; v != "" {
			vr.Values = [][]any{{v}}
		}

		list = append(list, &vr)
	}

	return list, nil
}

func (s *fakeSheets) BatchUpdate(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange) error {
	s.Lock()
	defer s.Unlock()

	if len(data) == 0 {
		return fmt.Errorf("empty update")
	}

	tab, _ := split(data[0].Range)
	tab = strings.ReplaceAll(strings.Trim(tab, "'"), "''", "'")

	if s.failPut[tab] {
		return fmt.Errorf("simulated error updating '%s'", tab)
	}

	s.updates[tab] = data

	return nil
}

func (s *fakeSheets) writes() int {
	s.Lock()
	defer s.Unlock()

	return len(s.updates)
}
