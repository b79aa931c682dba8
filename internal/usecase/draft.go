package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"nostrcal"
	"nostrcal/internal/domain"
	"nostrcal/recur"
	"nostrcal/wallclock"
)

// Draft is a user-authored event before publication: wall-clock values plus
// metadata, not yet a signed record. The publish layer signs and submits
// the tag tuples this package produces.
type Draft struct {
	Kind       int    `json:"kind"`
	Identifier string `json:"identifier,omitempty"`

	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Image   string `json:"image,omitempty"`
	Content string `json:"content,omitempty"`

	StartDate string `json:"startDate"` // YYYY-MM-DD
	StartTime string `json:"startTime,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Zone      string `json:"tzid,omitempty"`

	Locations []string `json:"locations,omitempty"`
	Geohash   string   `json:"geohash,omitempty"`

	Rule *recur.Rule `json:"rule,omitempty"`
}

// BuildTags assembles the outgoing tag tuples for the draft. The "d"
// identifier is preserved verbatim when present so edits stay attached to
// the same logical entity; a fresh one is minted otherwise.
func (uc *CalendarUsecase) BuildTags(d Draft) []nostrcal.Tag {
	identifier := d.Identifier
	if identifier == "" {
		identifier = uuid.NewString()
	}

	tags := []nostrcal.Tag{{domain.TagIdentifier, identifier}}

	if d.Title != "" {
		tags = append(tags, nostrcal.Tag{domain.TagTitle, d.Title})
	}
	if d.Summary != "" {
		tags = append(tags, nostrcal.Tag{domain.TagSummary, d.Summary})
	}
	if d.Image != "" {
		tags = append(tags, nostrcal.Tag{domain.TagImage, d.Image})
	}

	if d.Kind == nostrcal.KindDateEvent {
		tags = append(tags, nostrcal.Tag{domain.TagStart, d.StartDate})
		if d.EndDate != "" {
			tags = append(tags, nostrcal.Tag{domain.TagEnd, d.EndDate})
		}
	} else {
		start := wallclock.ToInstant(d.StartDate, d.StartTime, d.Zone)
		tags = append(tags, nostrcal.Tag{domain.TagStart, strconv.FormatInt(start, 10)})
		if d.EndDate != "" && d.EndTime != "" {
			end := wallclock.ToInstant(d.EndDate, d.EndTime, d.Zone)
			if end < start {
				end = start
			}
			tags = append(tags, nostrcal.Tag{domain.TagEnd, strconv.FormatInt(end, 10)})
		}
		if d.Zone != "" {
			tags = append(tags, nostrcal.Tag{domain.TagStartZone, d.Zone})
			tags = append(tags, nostrcal.Tag{domain.TagEndZone, d.Zone})
		}
	}

	for _, loc := range d.Locations {
		tags = append(tags, nostrcal.Tag{domain.TagLocation, loc})
	}
	if d.Geohash != "" {
		tags = append(tags, nostrcal.Tag{domain.TagGeohash, d.Geohash})
	}

	if d.Rule != nil && d.Rule.Enabled {
		if rr, err := d.Rule.RRule(); err == nil {
			tags = append(tags, nostrcal.Tag{domain.TagRule, rr})
		}
	}

	return tags
}

// PlanOccurrences expands the draft into independent outgoing drafts, one
// per occurrence. The first keeps the draft's identifier; every further
// occurrence is its own logical entity with a fresh one.
func (uc *CalendarUsecase) PlanOccurrences(d Draft, rule recur.Rule) ([]Draft, error) {
	baseStart, baseEnd, err := draftSpan(d)
	if err != nil {
		return nil, err
	}

	occurrences := recur.Expand(baseStart, baseEnd, rule)

	drafts := make([]Draft, 0, len(occurrences))
	for i, occ := range occurrences {
		next := d
		next.Rule = nil
		if i > 0 {
			next.Identifier = uuid.NewString()
		}

		next.StartDate = occ.Start.Format(wallclock.DateLayout)
		next.EndDate = occ.End.Format(wallclock.DateLayout)
		if d.Kind == nostrcal.KindTimeEvent {
			next.StartTime = occ.Start.Format(wallclock.TimeLayout)
			next.EndTime = occ.End.Format(wallclock.TimeLayout)
		}

		drafts = append(drafts, next)
	}

	return drafts, nil
}

// draftSpan anchors the draft's wall-clock values in its zone so the
// expander can shift them. Dates without times anchor at midnight.
func draftSpan(d Draft) (time.Time, time.Time, error) {
	loc := time.Local
	if d.Zone != "" {
		if l, err := time.LoadLocation(d.Zone); err == nil {
			loc = l
		}
	}

	start, err := parseWall(d.StartDate, d.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("draft start: %w", err)
	}

	end := start
	if d.EndDate != "" {
		end, err = parseWall(d.EndDate, d.EndTime, loc)
		if err != nil || end.Before(start) {
			end = start
		}
	}

	return start, end, nil
}

func parseWall(date, clock string, loc *time.Location) (time.Time, error) {
	if clock == "" {
		return time.ParseInLocation(wallclock.DateLayout, date, loc)
	}
	return time.ParseInLocation(wallclock.DateLayout+" "+wallclock.TimeLayout, date+" "+clock, loc)
}
