package wallclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DisplayOptions selects which parts of the instant are rendered.
type DisplayOptions struct {
	ShowDate bool
	ShowTime bool
}

// Display renders the instant in the given zone. An empty or unknown zone
// identifier silently falls back to the viewer's local timezone.
func Display(t time.Time, tzid string, opts DisplayOptions) string {
	loc := time.Local
	if tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		}
	}

	local := t.In(loc)
	switch {
	case opts.ShowDate && opts.ShowTime:
		return local.Format(wallLayout)
	case opts.ShowTime:
		return local.Format(TimeLayout)
	default:
		return local.Format(DateLayout)
	}
}

// DisplayUnix renders an epoch-second instant.
func DisplayUnix(sec int64, tzid string, opts DisplayOptions) string {
	return Display(time.Unix(sec, 0), tzid, opts)
}

// DisplayRaw renders a stored timestamp of unknown encoding, see
// ParseTimestamp.
func DisplayRaw(raw, tzid string, opts DisplayOptions) string {
	return Display(ParseTimestamp(raw), tzid, opts)
}

// ParseTimestamp decodes a stored timestamp that may be encoded as seconds
// (10 digits) or milliseconds (13 digits). Digit count decides first; the
// ambiguous 11–12 digit widths are resolved by whichever interpretation
// yields a plausible calendar year. A value failing every check falls back
// to the current instant rather than propagating a nonsense date.
func ParseTimestamp(raw string) time.Time {
	t, err := parseTimestamp(raw)
	if err != nil {
		return time.Now()
	}
	return t
}

func parseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}

	digits := len(strings.TrimPrefix(s, "-"))
	var t time.Time
	switch {
	case digits <= 10:
		t = time.Unix(v, 0)
	case digits >= 13:
		t = time.UnixMilli(v)
	default:
		t = time.Unix(v, 0)
		if !plausibleYear(t) {
			t = time.UnixMilli(v)
		}
	}

	if !plausibleYear(t) {
		return time.Time{}, fmt.Errorf("timestamp %q out of range", raw)
	}
	return t, nil
}

func plausibleYear(t time.Time) bool {
	y := t.Year()
	return y >= 1970 && y <= 2100
}
