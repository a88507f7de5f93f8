package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddMonthsClamped advances t by the given number of calendar months,
// preserving the day of month where possible and clamping to the last day of
// the target month on overflow (Jan 31 + 1 month = Feb 28/29, not Mar 2/3 as
// time.AddDate would normalize it).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	last := daysIn(target.Year(), target.Month())
	if day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// TruncateToDay drops the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DateBefore reports whether a falls on an earlier calendar day than b,
// ignoring time of day.
func DateBefore(a, b time.Time) bool {
	return TruncateToDay(a).Before(TruncateToDay(b))
}

// RoundMoney rounds a monetary value to 2 decimal places, half up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
