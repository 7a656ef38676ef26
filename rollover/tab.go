package rollover

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/sheets/v4"
)

type Kind int

const (
	// Relocate moves a cell value unchanged to another cell on the same row.
	Relocate Kind = iota

	// Overwrite replaces a cell value in place.
	Overwrite
)

func (k Kind) String() string {
	switch k {
	case Relocate:
		return "relocate"
	case Overwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Rule describes how the value of a single cell is carried over to the new month.
// Shift applies to Relocate rules, Value to Overwrite rules.
type Rule struct {
	Cell  string
	Kind  Kind
	Shift int
	Value func(p Period, prior string) (string, error)
}

// rules is the fixed set of cells updated on every tab, in the order they are fetched.
var rules = []Rule{
	{Cell: "C11", Kind: Relocate, Shift: 2},
	{Cell: "C12", Kind: Relocate, Shift: 2},
	{Cell: "C13", Kind: Relocate, Shift: 2},
	{Cell: "C10", Kind: Overwrite, Value: monthLabel},
	{Cell: "I5", Kind: Overwrite, Value: shortDate},
	{Cell: "C5", Kind: Overwrite, Value: compactShift},
}

// Result is the outcome of synchronising a single tab. Ranges holds the values that
// were written (or would have been written if the update failed).
type Result struct {
	Tab    string
	Ranges []*sheets.ValueRange
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Cells returns the cells updated on every tab, in the order they are fetched.
func Cells() []string {
	cells := make([]string, 0, len(rules))
	for _, rule := range rules {
		cells = append(cells, rule.Cell)
	}

	return cells
}

// Ranges returns the A1 notation ranges fetched for a tab.
func Ranges(tab string) []string {
	return ranges(tab, rules)
}

func ranges(tab string, rules []Rule) []string {
	list := make([]string, 0, len(rules))
	for _, rule := range rules {
		list = append(list, fmt.Sprintf("%s!%s", quote(tab), rule.Cell))
	}

	return list
}

// Synchronise fetches the rollover cells for a single tab, applies the rules and writes
// the result back in a single batch update. Errors are logged and returned in the
// Result, never propagated.
func Synchronise(ctx context.Context, run *Run, gsheets Sheets, spreadsheetID string, tab string) Result {
	return synchronise(ctx, run, gsheets, spreadsheetID, tab, rules)
}

func synchronise(ctx context.Context, run *Run, gsheets Sheets, spreadsheetID string, tab string, rules []Rule) (result Result) {
	result.Tab = tab

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic updating tab '%s' (%v)", tab, r)
		}

		if result.Err != nil {
			errorf("%v  error occurred trying to get/update tab '%s' (%v)", run.ID, tab, result.Err)
		}
	}()

	data, err := gsheets.BatchGet(ctx, spreadsheetID, ranges(tab, rules))
	if err != nil {
		result.Err = fmt.Errorf("unable to retrieve cells (%w)", err)
		return
	} else if len(data) != len(rules) {
		result.Err = fmt.Errorf("expected %v ranges, got %v", len(rules), len(data))
		return
	}

	if run.Debug {
		debugf("%v  tab:%s  cells:%v", run.ID, tab, format(data))
	}

	updated, err := apply(run.Period, rules, data)
	if err != nil {
		result.Err = err
		return
	}

	result.Ranges = updated

	if err := gsheets.BatchUpdate(ctx, spreadsheetID, updated); err != nil {
		result.Err = fmt.Errorf("unable to update cells (%w)", err)
		return
	}

	if run.Debug {
		debugf("%v  tab:%s  updated:%v", run.ID, tab, format(updated))
	}

	return
}

// apply returns the ranges to be written for the fetched ranges. The fetched ranges
// are not modified.
func apply(p Period, rules []Rule, ranges []*sheets.ValueRange) ([]*sheets.ValueRange, error) {
	updated := make([]*sheets.ValueRange, 0, len(ranges))

	for _, vr := range ranges {
		if vr == nil {
			return nil, fmt.Errorf("missing range")
		}

		sheet, cell := split(vr.Range)
		rule, ok := lookup(rules, cell)
		if !ok {
			return nil, fmt.Errorf("no rule for range '%s'", vr.Range)
		}

		switch rule.Kind {
		case Relocate:
			shifted, err := shift(cell, rule.Shift)
			if err != nil {
				return nil, err
			}

			updated = append(updated, &sheets.ValueRange{
				Range:          join(sheet, shifted),
				MajorDimension: vr.MajorDimension,
				Values:         vr.Values,
			})

		case Overwrite:
			v, err := rule.Value(p, value(vr))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", vr.Range, err)
			}

			updated = append(updated, &sheets.ValueRange{
				Range:  vr.Range,
				Values: [][]any{{v}},
			})

		default:
			return nil, fmt.Errorf("unsupported rule %v for range '%s'", rule.Kind, vr.Range)
		}
	}

	return updated, nil
}

func lookup(rules []Rule, cell string) (Rule, bool) {
	for _, rule := range rules {
		if strings.EqualFold(rule.Cell, cell) {
			return rule, true
		}
	}

	return Rule{}, false
}

// split separates an A1 range into sheet and cell. A single cell returned as e.g.
// C11:C11 is reduced to C11.
func split(address string) (string, string) {
	sheet := ""
	cell := address

	if ix := strings.LastIndex(address, "!"); ix >= 0 {
		sheet = address[:ix]
		cell = address[ix+1:]
	}

	if from, to, ok := strings.Cut(cell, ":"); ok && strings.EqualFold(from, to) {
		cell = from
	}

	return sheet, strings.ReplaceAll(cell, "$", "")
}

func join(sheet, cell string) string {
	if sheet == "" {
		return cell
	}

	return sheet + "!" + cell
}

func shift(cell string, columns int) (string, error) {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return "", fmt.Errorf("invalid cell '%s' (%w)", cell, err)
	}

	return excelize.CoordinatesToCellName(col+columns, row)
}

func quote(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

func value(vr *sheets.ValueRange) string {
	if len(vr.Values) > 0 && len(vr.Values[0]) > 0 && vr.Values[0][0] != nil {
		return fmt.Sprintf("%v", vr.Values[0][0])
	}

	return ""
}

func format(ranges []*sheets.ValueRange) string {
	var b strings.Builder
	for i, vr := range ranges {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s=%q", vr.Range, value(vr))
	}

	return b.String()
}

func monthLabel(p Period, _ string) (string, error) {
	return p.Label(), nil
}

func shortDate(p Period, _ string) (string, error) {
	return p.ShortDate(), nil
}

func compactShift(p Period, prior string) (string, error) {
	if prior == "" {
		return "", fmt.Errorf("no existing value to shift")
	}

	return p.CompactShift(prior), nil
}
