package recur

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// The expansion loop is authoritative; RRULE strings exist only so outgoing
// records and ICS feeds can carry a standards-shaped annotation.

var toRRuleWeekday = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

func fromRRuleWeekday(w rrule.Weekday) time.Weekday {
	// rrule counts MO=0..SU=6, time.Weekday counts SU=0..SA=6.
	return time.Weekday((w.Day() + 1) % 7)
}

// RRule renders the rule as an RFC 5545 RRULE value.
func (r Rule) RRule() (string, error) {
	if !r.Enabled {
		return "", fmt.Errorf("disabled rule has no rrule form")
	}

	opt := rrule.ROption{
		Interval: r.Interval,
		Count:    r.MaxOccurrences,
	}
	if opt.Count > MaxOccurrences {
		opt.Count = MaxOccurrences
	}
	if r.EndDate != nil {
		opt.Until = *r.EndDate
	}

	switch r.Pattern {
	case PatternDaily:
		opt.Freq = rrule.DAILY
	case PatternWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range r.WeeklyDays {
			opt.Byweekday = append(opt.Byweekday, toRRuleWeekday[d])
		}
	case PatternMonthly:
		opt.Freq = rrule.MONTHLY
		switch {
		case r.MonthlyWeekday != nil:
			wd := toRRuleWeekday[r.MonthlyWeekday.Day]
			opt.Byweekday = []rrule.Weekday{wd.Nth(r.MonthlyWeekday.Week)}
		case r.MonthlyDay >= 1:
			opt.Bymonthday = []int{r.MonthlyDay}
		}
	default:
		return "", fmt.Errorf("pattern %q has no rrule form", r.Pattern)
	}

	rr, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("build rrule: %w", err)
	}
	return rr.String(), nil
}

// ParseRRule maps an RRULE value back onto a Rule, best effort. Frequencies
// outside the supported subset are rejected.
func ParseRRule(s string) (Rule, error) {
	rr, err := rrule.StrToRRule(s)
	if err != nil {
		return Rule{}, fmt.Errorf("parse rrule: %w", err)
	}

	opt := rr.OrigOptions
	rule := Rule{
		Enabled:        true,
		Interval:       opt.Interval,
		MaxOccurrences: opt.Count,
	}
	if rule.Interval < 1 {
		rule.Interval = 1
	}
	if rule.MaxOccurrences < 1 || rule.MaxOccurrences > MaxOccurrences {
		rule.MaxOccurrences = MaxOccurrences
	}
	if !opt.Until.IsZero() {
		until := opt.Until
		rule.EndDate = &until
	}

	switch opt.Freq {
	case rrule.DAILY:
		rule.Pattern = PatternDaily
	case rrule.WEEKLY:
		rule.Pattern = PatternWeekly
		for _, w := range opt.Byweekday {
			rule.WeeklyDays = append(rule.WeeklyDays, fromRRuleWeekday(w))
		}
	case rrule.MONTHLY:
		rule.Pattern = PatternMonthly
		switch {
		case len(opt.Byweekday) > 0:
			w := opt.Byweekday[0]
			week := w.N()
			if week == 0 {
				week = 1
			}
			rule.MonthlyWeekday = &MonthlyWeekday{Week: week, Day: fromRRuleWeekday(w)}
		case len(opt.Bymonthday) > 0:
			rule.MonthlyDay = opt.Bymonthday[0]
		default:
			rule.MonthlyDay = 1
		}
	default:
		return Rule{}, fmt.Errorf("unsupported rrule frequency in %q", s)
	}

	return rule, nil
}
