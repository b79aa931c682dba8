// Package recur expands a base occurrence and a recurrence rule into the
// bounded sequence of further occurrences. Only the daily/weekly/monthly
// subset actually needed is implemented; this is not a full RFC 5545
// engine.
package recur

import (
	"fmt"
	"time"
)

type Pattern string

const (
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternCustom  Pattern = "custom"
)

// Occurrence cap and expansion horizon. The horizon terminates expansion of
// malformed rules even when the cap is never reached.
const (
	MaxOccurrences = 6
	maxHorizon     = 365 * 24 * time.Hour
)

// WeekLast selects the last occurrence of a weekday in a month.
const WeekLast = -1

// MonthlyWeekday selects the Week-th (1..4, or WeekLast) Day of the month.
type MonthlyWeekday struct {
	Week int          `json:"week"`
	Day  time.Weekday `json:"day"`
}

// Rule describes a bounded recurrence. Weekly rules need at least one
// weekday; monthly rules need exactly one of MonthlyDay/MonthlyWeekday.
type Rule struct {
	Enabled        bool            `json:"enabled"`
	Pattern        Pattern         `json:"pattern"`
	Interval       int             `json:"interval"`
	MaxOccurrences int             `json:"maxOccurrences"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	WeeklyDays     []time.Weekday  `json:"weeklyDays,omitempty"`
	MonthlyDay     int             `json:"monthlyDay,omitempty"`
	MonthlyWeekday *MonthlyWeekday `json:"monthlyWeekday,omitempty"`
}

// Validate reports every violated constraint. It has no side effects and
// an empty result means the rule is safe to expand.
func Validate(rule Rule) []error {
	var errs []error

	if rule.Interval < 1 {
		errs = append(errs, fmt.Errorf("interval must be at least 1, got %d", rule.Interval))
	}
	if rule.MaxOccurrences < 1 || rule.MaxOccurrences > MaxOccurrences {
		errs = append(errs, fmt.Errorf("occurrence count must be in [1,%d], got %d", MaxOccurrences, rule.MaxOccurrences))
	}

	switch rule.Pattern {
	case PatternWeekly:
		if len(rule.WeeklyDays) == 0 {
			errs = append(errs, fmt.Errorf("weekly pattern requires at least one weekday"))
		}
	case PatternMonthly:
		hasDay := rule.MonthlyDay != 0
		hasWeekday := rule.MonthlyWeekday != nil
		if hasDay == hasWeekday {
			errs = append(errs, fmt.Errorf("monthly pattern requires exactly one of monthlyDay or monthlyWeekday"))
		}
		if hasDay && (rule.MonthlyDay < 1 || rule.MonthlyDay > 31) {
			errs = append(errs, fmt.Errorf("day of month must be in [1,31], got %d", rule.MonthlyDay))
		}
		if hasWeekday && rule.MonthlyWeekday.Week != WeekLast &&
			(rule.MonthlyWeekday.Week < 1 || rule.MonthlyWeekday.Week > 4) {
			errs = append(errs, fmt.Errorf("week must be 1..4 or last, got %d", rule.MonthlyWeekday.Week))
		}
	case PatternDaily, PatternCustom:
	default:
		errs = append(errs, fmt.Errorf("unknown pattern %q", rule.Pattern))
	}

	return errs
}
