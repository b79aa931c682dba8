package recur

import (
	"sort"
	"time"
)

// Occurrence is one concrete start/end pair. Times are carried through
// unchanged from the base occurrence.
type Occurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Expand produces the bounded occurrence sequence for the rule. A disabled
// rule yields the single base occurrence. Expansion is safe on rules that
// were never validated: the occurrence cap and the 365-day horizon bound
// the loop, and a non-advancing pattern terminates immediately.
func Expand(baseStart, baseEnd time.Time, rule Rule) []Occurrence {
	if !rule.Enabled {
		return []Occurrence{{Start: baseStart, End: baseEnd}}
	}

	duration := baseEnd.Sub(baseStart)
	limit := rule.MaxOccurrences
	if limit > MaxOccurrences {
		limit = MaxOccurrences
	}
	if limit < 1 {
		limit = 1
	}
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	horizon := baseStart.Add(maxHorizon)
	out := []Occurrence{{Start: baseStart, End: baseStart.Add(duration)}}

	current := baseStart
	for len(out) < limit {
		next := advance(current, rule, interval)
		if !next.After(current) {
			break
		}
		if next.After(horizon) {
			break
		}
		if rule.EndDate != nil && dateAfter(next, *rule.EndDate) {
			break
		}
		current = next
		out = append(out, Occurrence{Start: current, End: current.Add(duration)})
	}

	return out
}

func advance(current time.Time, rule Rule, interval int) time.Time {
	switch rule.Pattern {
	case PatternWeekly:
		if len(rule.WeeklyDays) > 0 {
			return nextSelectedWeekday(current, rule.WeeklyDays, interval)
		}
		return current.AddDate(0, 0, interval*7)
	case PatternMonthly:
		if rule.MonthlyWeekday != nil {
			return nextMonthlyWeekday(current, *rule.MonthlyWeekday, interval)
		}
		if rule.MonthlyDay >= 1 && rule.MonthlyDay <= 31 {
			return nextMonthlyDay(current, rule.MonthlyDay, interval)
		}
		return current.AddDate(0, 0, interval*30)
	default:
		// daily; custom rules advance day-wise as well
		return current.AddDate(0, 0, interval)
	}
}

// nextSelectedWeekday jumps to the earliest selected weekday strictly after
// the current one. When no selected day remains this week it wraps to the
// next week and skips the remaining interval weeks.
func nextSelectedWeekday(current time.Time, days []time.Weekday, interval int) time.Time {
	sorted := append([]time.Weekday(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	cur := current.Weekday()
	for _, d := range sorted {
		if d > cur {
			return current.AddDate(0, 0, int(d-cur))
		}
	}

	wrap := 7 - int(cur) + int(sorted[0])
	return current.AddDate(0, 0, wrap+(interval-1)*7)
}

// nextMonthlyDay jumps interval months ahead, clamping the day-of-month to
// the target month's actual last day.
func nextMonthlyDay(current time.Time, day, interval int) time.Time {
	year, month, _ := current.Date()
	hh, mm, ss := current.Clock()

	first := time.Date(year, month+time.Month(interval), 1, hh, mm, ss, current.Nanosecond(), current.Location())
	if last := daysInMonth(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// nextMonthlyWeekday jumps interval months ahead, then finds the week-th
// occurrence of the weekday, or the last occurrence for WeekLast.
func nextMonthlyWeekday(current time.Time, mw MonthlyWeekday, interval int) time.Time {
	year, month, _ := current.Date()
	hh, mm, ss := current.Clock()

	first := time.Date(year, month+time.Month(interval), 1, hh, mm, ss, current.Nanosecond(), current.Location())

	if mw.Week == WeekLast {
		last := first.AddDate(0, 0, daysInMonth(first)-1)
		back := (int(last.Weekday()) - int(mw.Day) + 7) % 7
		return last.AddDate(0, 0, -back)
	}

	week := mw.Week
	if week < 1 {
		week = 1
	} else if week > 4 {
		week = 4
	}
	forward := (int(mw.Day) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, forward+(week-1)*7)
}

func daysInMonth(t time.Time) int {
	year, month, _ := t.Date()
	return time.Date(year, month+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// dateAfter compares calendar dates only; the end date bounds whole days.
func dateAfter(t, bound time.Time) bool {
	ty, tm, td := t.Date()
	by, bm, bd := bound.Date()
	if ty != by {
		return ty > by
	}
	if tm != bm {
		return tm > bm
	}
	return td > bd
}
