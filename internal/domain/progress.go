package domain

import "time"

// DateLayout is the storage format of confirmation dates
const DateLayout = "2006-01-02"

// Progress holds the current streak and the number of confirmed days
type Progress struct {
	Streak int
	Total  int
}

// DateKey returns the calendar day of t in loc as YYYY-MM-DD
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// CalculateProgress counts consecutive confirmed days ending at today.
// The walk goes backward from today and stops at the first missing day,
// so it costs O(streak) regardless of history length.
func CalculateProgress(dates []string, today string) Progress {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}

	progress := Progress{Total: len(set)}

	day, err := time.Parse(DateLayout, today)
	if err != nil {
		return progress
	}

	for {
		if _, ok := set[day.Format(DateLayout)]; !ok {
			break
		}
		progress.Streak++
		day = day.AddDate(0, 0, -1)
	}

	return progress
}
