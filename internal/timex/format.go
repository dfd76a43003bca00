package timex

import (
	"fmt"
	"strings"
	"time"
)

// LocalLayout is the datetime-local input format, minute precision.
const LocalLayout = "2006-01-02T15:04"

// ISOZoneLayout is ISO 8601 with seconds and a numeric zone offset.
const ISOZoneLayout = "2006-01-02T15:04:05-07:00"

// ParseLocal parses "2025-02-01T17:05" (or with a space instead of T) in
// the local time zone.
func ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{LocalLayout, "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date and time %q, want YYYY-MM-DDTHH:MM", s)
}

// FormatISOWithZone renders t as "2025-02-01T17:05:00+08:00". UTC keeps the
// "+00:00" offset instead of "Z".
func FormatISOWithZone(t time.Time) string {
	return t.Format(ISOZoneLayout)
}

// Format replaces the tokens yyyy, MM, dd, HH, mm and ss in pattern with
// zero padded fields of t in t's location. Other text is kept.
func Format(t time.Time, pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		switch {
		case strings.HasPrefix(pattern[i:], "yyyy"):
			fmt.Fprintf(&b, "%d", t.Year())
			i += 4
			continue
		case strings.HasPrefix(pattern[i:], "MM"):
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case strings.HasPrefix(pattern[i:], "dd"):
			fmt.Fprintf(&b, "%02d", t.Day())
		case strings.HasPrefix(pattern[i:], "HH"):
			fmt.Fprintf(&b, "%02d", t.Hour())
		case strings.HasPrefix(pattern[i:], "mm"):
			fmt.Fprintf(&b, "%02d", t.Minute())
		case strings.HasPrefix(pattern[i:], "ss"):
			fmt.Fprintf(&b, "%02d", t.Second())
		default:
			b.WriteByte(pattern[i])
			i++
			continue
		}
		i += 2
	}
	return b.String()
}
