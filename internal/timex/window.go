package timex

import "time"

// WeekWindow returns the half-open interval [Monday 00:00:00, next Monday
// 00:00:00) of the week containing now, shifted by offset whole weeks.
// Offset 0 is the current week, -1 the previous one. Boundaries are in
// now's location.
func WeekWindow(now time.Time, offset int) (time.Time, time.Time) {
	// Go's weekday: Sunday=0 ... Saturday=6; treat Sunday as 7 (ISO).
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := now.AddDate(0, 0, -(wd-1)+offset*7)
	from := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 7)
}

// DayWindow returns the half-open interval [00:00:00, next 00:00:00) of the
// calendar day containing now, shifted by offset days.
func DayWindow(now time.Time, offset int) (time.Time, time.Time) {
	d := now.AddDate(0, 0, offset)
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}
