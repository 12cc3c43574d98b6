package availability

import (
	"strconv"
	"strings"
	"time"
)

// ISOWeekday maps t's weekday to 1=Monday..7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseWorkingDays reads a comma separated weekday list such as "1,2,3,4,5".
// Blank or out of range entries are ignored; an empty result means every day
// is a working day.
func ParseWorkingDays(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var days []int
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 1 || d > 7 || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return days
}

// FormatWorkingDays is the inverse of ParseWorkingDays.
func FormatWorkingDays(days []int) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

func isWorkingDay(days []int, weekday int) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
