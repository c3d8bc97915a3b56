package util

import (
	"strings"
	"time"
)

const monthLayout = "2006-01"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseMonth reads a "YYYY-MM" key as the first day of that month in UTC.
func ParseMonth(month string) (time.Time, error) {
	return time.Parse(monthLayout, strings.TrimSpace(month))
}

func FormatMonth(t time.Time) string {
	return t.UTC().Format(monthLayout)
}
