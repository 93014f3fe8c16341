package utils

import "time"

// dateFormats are tried in order when parsing dates from query parameters
// and CSV cells. Spreadsheet exports are rarely consistent.
var dateFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

// ParseDate parses a date string, trying multiple formats.
func ParseDate(dateStr string) (time.Time, error) {
	var lastErr error
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// Day truncates a timestamp to midnight UTC. Sales are stored and
// aggregated at day precision.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
