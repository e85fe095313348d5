package planner

import "strings"

// weekdayOrdinals maps lowercase weekday names to time.Weekday values.
var weekdayOrdinals = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// FilterByWeekday retains only slots whose date falls on one of the allowed
// weekdays. Names are matched case-insensitively. An empty allowedDays means
// no filtering. Unrecognized names are skipped rather than rejected (the
// request layer treats day names leniently) and returned in ignored so
// callers can report them. Relative order of surviving slots is preserved.
func FilterByWeekday(slots []Slot, allowedDays []string) (kept []Slot, ignored []string) {
	if len(allowedDays) == 0 {
		return slots, nil
	}

	allowed := make(map[int]bool, len(allowedDays))
	for _, day := range allowedDays {
		ordinal, ok := weekdayOrdinals[strings.ToLower(strings.TrimSpace(day))]
		if !ok {
			ignored = append(ignored, day)
			continue
		}
		allowed[ordinal] = true
	}

	for _, slot := range slots {
		if allowed[int(slot.Date.Weekday())] {
			kept = append(kept, slot)
		}
	}
	return kept, ignored
}
