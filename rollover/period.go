package rollover

import (
	"fmt"
	"time"
)

// Buddhist era offset from the Gregorian calendar.
const BE = 543

// Thai abbreviated month names, indexed from January.
var Months = [12]string{
	"มค.", "กพ.", "มีค.", "เมย.", "พค.", "มิย.",
	"กค.", "สค.", "กย.", "ตค.", "พย.", "ธค.",
}

// Period is the month-end date a run reports on, expressed in the Buddhist era.
type Period struct {
	Year  int
	Month time.Month
	Day   int
}

// NewPeriod returns the last day of the current month (or of the override month in the
// current year) in the Buddhist era. An override of 0 means 'no override'.
func NewPeriod(today time.Time, override int) Period {
	year := today.Year()
	month := today.Month()

	if override >= 1 && override <= 12 {
		month = time.Month(override)
	}

	// day 0 of the following month is the last day of this month
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	return Period{
		Year:  year + BE,
		Month: month,
		Day:   last.Day(),
	}
}

// Gregorian returns the period as a Gregorian calendar date.
func (p Period) Gregorian() time.Time {
	return time.Date(p.Year-BE, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
}

// ShortDate formats the period as dd/mm/yy with a two digit Buddhist year.
func (p Period) ShortDate() string {
	return fmt.Sprintf("%02d/%02d/%02d", p.Day, int(p.Month), p.Year%100)
}

// Label returns the spreadsheet title for the period e.g. ตค.67.
func (p Period) Label() string {
	return label(int(p.Month), p.Year)
}

// PreviousLabel returns the title of the previous month's spreadsheet. The year is
// deliberately not decremented for January.
func (p Period) PreviousLabel() string {
	index := (int(p.Month) - 2 + 12) % 12

	return label(index+1, p.Year)
}

// CompactShift replaces the year/month prefix of a legacy code with the Gregorian yymm
// of the period, keeping the last three characters of the existing value.
func (p Period) CompactShift(prior string) string {
	runes := []rune(prior)
	if len(runes) > 3 {
		runes = runes[len(runes)-3:]
	}

	return p.Gregorian().Format("0601") + string(runes)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, int(p.Month), p.Day)
}

func label(month int, year int) string {
	return fmt.Sprintf("%s%02d", Months[month-1], year%100)
}
