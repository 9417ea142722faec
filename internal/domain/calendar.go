package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	LocaleES = "es"
	LocaleEN = "en"

	// DateLayout is the date-only form accepted for deadlines.
	DateLayout = "2006-01-02"
)

var monthNames = map[string][12]string{
	LocaleES: {"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
	LocaleEN: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
}

// Calendar is the month/year projection of a deadline.
type Calendar struct {
	Label      string
	Year       int
	MonthIndex int
}

// DeriveCalendar computes the calendar projection of deadline in its own
// location. Unknown locales fall back to Spanish.
func DeriveCalendar(deadline time.Time, locale string) Calendar {
	idx := int(deadline.Month()) - 1
	return Calendar{
		Label:      MonthLabel(idx, deadline.Year(), locale),
		Year:       deadline.Year(),
		MonthIndex: idx,
	}
}

// MonthName returns the capitalized month name for a 0-based index.
func MonthName(monthIndex int, locale string) string {
	if monthIndex < 0 || monthIndex > 11 {
		return ""
	}
	names, ok := monthNames[locale]
	if !ok {
		names = monthNames[LocaleES]
	}
	return names[monthIndex]
}

// MonthLabel renders the long month and year, e.g. "marzo de 2024" or
// "March 2024".
func MonthLabel(monthIndex, year int, locale string) string {
	name := MonthName(monthIndex, locale)
	if locale == LocaleEN {
		return fmt.Sprintf("%s %d", name, year)
	}
	return fmt.Sprintf("%s de %d", strings.ToLower(name), year)
}

// DeadlineFromDate turns a YYYY-MM-DD date into the last second of that day
// in loc.
func DeadlineFromDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc), nil
}

// EndOfMonth returns the last second of the month that is offset months away
// from ref, in ref's location.
func EndOfMonth(ref time.Time, offset int) time.Time {
	first := time.Date(ref.Year(), ref.Month()+time.Month(offset)+1, 1, 23, 59, 59, 0, ref.Location())
	return first.AddDate(0, 0, -1)
}
