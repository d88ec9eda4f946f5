// Package clock owns in-world time: the current date, elapsed counters,
// flow-control state (pause/speed/advance mode), and deadline pressure.
package clock

import "fmt"

// GameDate is a day-granular in-world date. Month is 1-12.
type GameDate struct {
	Day   int `json:"day" yaml:"day"`
	Month int `json:"month" yaml:"month"`
	Year  int `json:"year" yaml:"year"`
}

var monthNames = [13]string{
	"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English name of a month (1-12), or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// IsLeapYear reports whether a year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

// DaysInMonth returns the number of days in a month, accounting for leap years.
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// totalMonths maps a date onto a linear month index for comparisons.
func (d GameDate) totalMonths() int {
	return d.Year*12 + d.Month
}

// AddMonths returns the date shifted forward (or back) by a month count.
// The day component is preserved, clamped to the target month's length.
func (d GameDate) AddMonths(months int) GameDate {
	total := d.Year*12 + d.Month + months
	year := (total - 1) / 12
	month := (total-1)%12 + 1
	day := d.Day
	if max := DaysInMonth(month, year); day > max {
		day = max
	}
	return GameDate{Day: day, Month: month, Year: year}
}

// MonthsBetween returns the signed number of whole months from a to b.
func MonthsBetween(from, to GameDate) int {
	return to.totalMonths() - from.totalMonths()
}

// Before reports whether d falls strictly before other.
func (d GameDate) Before(other GameDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d falls strictly after other.
func (d GameDate) After(other GameDate) bool {
	return other.Before(d)
}

// SameMonth reports whether two dates fall in the same calendar month.
func (d GameDate) SameMonth(other GameDate) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// String renders the date as "January 2024" (the day is a pacing detail,
// not something the player reads).
func (d GameDate) String() string {
	return fmt.Sprintf("%s %d", MonthName(d.Month), d.Year)
}
