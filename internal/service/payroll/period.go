package payroll

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
)

// cutoverDay is the first day of the month that already belongs to the next pay period.
const cutoverDay = 26

var monthNames = [12]string{
	"Janúar", "Febrúar", "Mars", "Apríl", "Maí", "Júní",
	"Júlí", "Ágúst", "September", "Október", "Nóvember", "Desember",
}

// Layouts accepted for dates coming from forms and spreadsheet cells.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2.1.2006",
	"1/2/2006",
}

// ResolvePeriod returns the pay period label for date, e.g. "2024-03 (Mars)".
// Days 26 and later belong to the following month's period. A zero date
// yields payroll.UnknownPeriod.
func ResolvePeriod(date time.Time) string {
	if date.IsZero() {
		return payroll.UnknownPeriod
	}

	year, month, day := date.Date()
	if day >= cutoverDay {
		// Ten days past the 26th always lands in the next month, whatever its length.
		rolled := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 10)
		year, month = rolled.Year(), rolled.Month()
	}

	return PeriodLabel(year, month)
}

// ResolvePeriodString parses s with any accepted layout and resolves it.
// Unparseable input yields payroll.UnknownPeriod rather than an error.
func ResolvePeriodString(s string) string {
	date, ok := ParseDate(s)
	if !ok {
		return payroll.UnknownPeriod
	}
	return ResolvePeriod(date)
}

// ParseDate tries every accepted layout in turn.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PeriodLabel formats year and month as a sortable, readable label.
func PeriodLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d (%s)", year, int(month), monthNames[month-1])
}

// NormalizePeriod accepts "YYYY-MM" or a full label and returns the full label.
func NormalizePeriod(s string) (string, error) {
	year, month, err := parsePeriod(s)
	if err != nil {
		return "", err
	}
	return PeriodLabel(year, month), nil
}

// PeriodBounds returns the first and last calendar day covered by a period:
// the 26th of the previous month through the 25th of the period's month.
func PeriodBounds(label string) (from time.Time, to time.Time, err error) {
	year, month, err := parsePeriod(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to = time.Date(year, month, cutoverDay-1, 0, 0, 0, 0, time.UTC)
	from = time.Date(year, month-1, cutoverDay, 0, 0, 0, 0, time.UTC)
	return from, to, nil
}

func parsePeriod(s string) (int, time.Month, error) {
	s = strings.TrimSpace(s)
	if len(s) < 7 {
		return 0, 0, fmt.Errorf("%w: %q", payroll.ErrInvalidPeriod, s)
	}
	t, err := time.Parse("2006-01", s[:7])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", payroll.ErrInvalidPeriod, s)
	}
	return t.Year(), t.Month(), nil
}

// Periods lists the distinct period labels found in shifts, newest first.
// Shifts carrying payroll.UnknownPeriod are left out; see CountUnassigned.
func Periods(shifts []payroll.Shift) []string {
	seen := make(map[string]struct{})
	periods := make([]string, 0)
	for _, s := range shifts {
		if s.PayPeriod == payroll.UnknownPeriod || s.PayPeriod == "" {
			continue
		}
		if _, ok := seen[s.PayPeriod]; ok {
			continue
		}
		seen[s.PayPeriod] = struct{}{}
		periods = append(periods, s.PayPeriod)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods
}

// CountUnassigned counts shifts that could not be placed in any period.
func CountUnassigned(shifts []payroll.Shift) int {
	n := 0
	for _, s := range shifts {
		if s.PayPeriod == payroll.UnknownPeriod || s.PayPeriod == "" {
			n++
		}
	}
	return n
}
