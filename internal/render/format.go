package render

import (
	"time"
)

// FormatDate turns 2024-03-05 into 05-03-2024. Unparseable input is returned as-is.
func FormatDate(s string) string {
	if len(s) < len(time.DateOnly) {
		return s
	}
	t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)])
	if err != nil {
		return s
	}
	return t.Format("02-01-2006")
}

// FormatTime turns 13:30 (or 13:30:00.000) into 01:30 pm. Unparseable input is returned as-is.
func FormatTime(s string) string {
	if len(s) < len("15:04") {
		return s
	}
	t, err := time.Parse("15:04", s[:len("15:04")])
	if err != nil {
		return s
	}
	return t.Format("03:04 pm")
}
