package availability

import "time"

// FormatDateTime renders an ISO instant as e.g. "May 13, 2025 at 2:00 PM" in
// loc. Unparsable input is returned verbatim so a bad timestamp degrades the
// message instead of failing the request; an empty one becomes "Invalid date".
func FormatDateTime(value string, loc *time.Location) string {
	t, err := parseISO(value)
	if err != nil {
		if value == "" {
			return "Invalid date"
		}
		return value
	}
	return t.In(loc).Format("January 2, 2006 at 3:04 PM")
}

// FormatTime renders an ISO instant as e.g. "2:00 PM" in loc, with the same
// fallback behaviour as FormatDateTime.
func FormatTime(value string, loc *time.Location) string {
	t, err := parseISO(value)
	if err != nil {
		if value == "" {
			return "Invalid time"
		}
		return value
	}
	return t.In(loc).Format("3:04 PM")
}
