// Package wallclock converts between wall-clock values (a calendar date and
// time-of-day, meaningful only relative to a timezone) and absolute
// instants, and formats instants for display. Conversions never fail to the
// caller; internal errors degrade to the viewer-local interpretation.
package wallclock

import (
	"fmt"
	"time"
)

const (
	wallLayout = "2006-01-02 15:04"
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// searchWindow bounds the binary search around the naive interpretation.
// Zone offsets never differ from the viewer's by more than a day.
const searchWindow = 24 * time.Hour

// ToInstant returns the epoch second whose wall-clock rendering in the
// given zone equals date+clock to the minute. Any internal failure falls
// back to interpreting the wall-clock in the viewer's local timezone.
func ToInstant(date, clock, tzid string) int64 {
	sec, err := toInstant(date, clock, tzid)
	if err != nil {
		return localInstant(date, clock)
	}
	return sec
}

// toInstant searches the ±24h window around the naive local interpretation,
// narrowing while the window exceeds one minute and comparing the
// zone-rendered wall-clock of the midpoint lexicographically against the
// target. Rendered wall-clocks sort like the underlying instants, so the
// search converges in about 17 steps.
func toInstant(date, clock, tzid string) (int64, error) {
	loc, err := time.LoadLocation(tzid)
	if err != nil {
		return 0, fmt.Errorf("invalid timezone %q: %w", tzid, err)
	}

	target := date + " " + clock
	naive, err := time.ParseInLocation(wallLayout, target, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid wall-clock %q: %w", target, err)
	}

	lo := naive.Add(-searchWindow).Unix()
	hi := naive.Add(searchWindow).Unix()

	for hi-lo > 60 {
		mid := lo + (hi-lo)/2
		if renderWall(mid, loc) < target {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Snap to the start of the minute; zone offsets are whole minutes.
	for _, candidate := range []int64{hi - hi%60, lo - lo%60} {
		if renderWall(candidate, loc) == target {
			return candidate, nil
		}
	}

	return 0, fmt.Errorf("no instant renders %q in %s", target, tzid)
}

func renderWall(sec int64, loc *time.Location) string {
	return time.Unix(sec, 0).In(loc).Format(wallLayout)
}

// localInstant is the degraded interpretation used when the zone-aware
// conversion cannot be performed.
func localInstant(date, clock string) int64 {
	t, err := time.ParseInLocation(wallLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Now().Unix()
	}
	return t.Unix()
}
