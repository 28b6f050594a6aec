package dateutil

import "time"

// DayFormat is the calendar-day wire format used throughout the API.
const DayFormat = "2006-01-02"

// DaysBetween returns the inclusive day count between two calendar dates.
// The absolute difference is used, so swapped endpoints yield the same count
// (kept for compatibility with the upstream backend's behavior).
func DaysBetween(start, end string) (int, error) {
	s, err := time.Parse(DayFormat, start)
	if err != nil {
		return 0, err
	}
	e, err := time.Parse(DayFormat, end)
	if err != nil {
		return 0, err
	}

	diff := e.Sub(s)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours()/24) + 1, nil
}

// DatesBetween expands an inclusive date range into its calendar days.
// Swapped endpoints produce an empty slice.
func DatesBetween(start, end string) ([]string, error) {
	s, err := time.Parse(DayFormat, start)
	if err != nil {
		return nil, err
	}
	e, err := time.Parse(DayFormat, end)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DayFormat))
	}
	return dates, nil
}

// Today returns the current calendar day in wire format.
func Today() string {
	return time.Now().Format(DayFormat)
}

// FormatDisplay renders a timestamp for human-readable documents.
func FormatDisplay(t time.Time) string {
	return t.Format("02 Jan 2006")
}
