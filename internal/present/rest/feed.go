package rest

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"nostrcal/internal/domain"
	"nostrcal/wallclock"
)

// BuildFeed renders events as an iCalendar document. Date-based events
// become all-day entries; timed events are rendered as UTC instants so
// consumers do not need the zone table.
func BuildFeed(events []domain.CalendarEvent) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//nostrcal//calendar feed//EN")

	for _, ev := range events {
		uid := ev.Coordinate().String() + "@nostrcal"
		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(time.Unix(ev.CreatedAt, 0).UTC())

		if ev.Title != "" {
			ve.SetSummary(ev.Title)
		}
		if ev.Content != "" {
			ve.SetDescription(ev.Content)
		} else if ev.Summary != "" {
			ve.SetDescription(ev.Summary)
		}
		if len(ev.Locations) > 0 {
			ve.SetLocation(ev.Locations[0])
		}

		if ev.Start.IsDate() {
			if start, err := time.Parse(wallclock.DateLayout, ev.Start.Date); err == nil {
				ve.SetAllDayStartAt(start)
				if ev.End != nil && ev.End.IsDate() {
					if end, err := time.Parse(wallclock.DateLayout, ev.End.Date); err == nil {
						// stored end dates are inclusive, DTEND is exclusive
						ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
					}
				}
			}
		} else {
			ve.SetStartAt(time.Unix(ev.Start.Unix, 0).UTC())
			if ev.End != nil && !ev.End.IsDate() {
				ve.SetEndAt(time.Unix(ev.End.Unix, 0).UTC())
			}
		}

		if rr := ev.Record.TagValue(domain.TagRule); rr != "" {
			ve.AddRrule(rr)
		}
	}

	return cal.Serialize()
}
