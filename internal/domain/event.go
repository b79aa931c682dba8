package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nostrcal"
	"nostrcal/geo"
	"nostrcal/wallclock"
)

var dateForm = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Temporal is a record's time representation: either a pure calendar date,
// timezone-independent by definition, or an absolute instant with an
// optional zone annotation used purely for display.
type Temporal struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD
	Unix int64  `json:"unix,omitempty"` // seconds since epoch
	Zone string `json:"tzid,omitempty"`
}

func (t Temporal) IsDate() bool {
	return t.Date != ""
}

// Display renders the temporal value for a viewer. Date values pass
// through unchanged; instants render in their annotated zone, falling back
// to the viewer-local zone.
func (t Temporal) Display(showTime bool) string {
	if t.IsDate() {
		return t.Date
	}
	return wallclock.DisplayUnix(t.Unix, t.Zone, wallclock.DisplayOptions{
		ShowDate: true,
		ShowTime: showTime,
	})
}

// CalendarEvent is the validated, typed view of a calendar record. Raw
// tag tuples are decoded once at this boundary so downstream code never
// re-scans tag arrays.
type CalendarEvent struct {
	ID         string `json:"id"`
	Author     string `json:"author"`
	Kind       int    `json:"kind"`
	Identifier string `json:"identifier"`
	CreatedAt  int64  `json:"createdAt"`

	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Image   string `json:"image,omitempty"`
	Content string `json:"content,omitempty"`

	Start Temporal  `json:"start"`
	End   *Temporal `json:"end,omitempty"`

	Locations []string `json:"locations,omitempty"`
	Geohash   string   `json:"geohash,omitempty"`

	// Distance is a decoration applied by distance sorting; nil when the
	// event has no resolvable coordinates.
	Distance *float64 `json:"distance,omitempty"`

	Record nostrcal.Record `json:"-"`
}

// Coordinate returns the event's logical entity key.
func (e CalendarEvent) Coordinate() nostrcal.Coordinate {
	return nostrcal.Coordinate{Kind: e.Kind, Author: e.Author, Identifier: e.Identifier}
}

// Point decodes the event's geohash. ok is false when no location
// resolves.
func (e CalendarEvent) Point() (geo.Point, bool) {
	if e.Geohash == "" {
		return geo.Point{}, false
	}
	return geo.Decode(e.Geohash)
}

// StartUnix returns a sortable instant for any temporal shape. Dates sort
// at midnight UTC of their day.
func (e CalendarEvent) StartUnix() int64 {
	if e.Start.IsDate() {
		t, err := time.Parse(wallclock.DateLayout, e.Start.Date)
		if err != nil {
			return 0
		}
		return t.Unix()
	}
	return e.Start.Unix
}

// EventFromRecord validates and decodes a calendar record. Records of the
// wrong kind, missing their identifier, or carrying an unparseable start
// are rejected; a timed end earlier than the start is clamped so the pair
// never renders reversed.
func EventFromRecord(r nostrcal.Record) (CalendarEvent, error) {
	if r.Kind != nostrcal.KindDateEvent && r.Kind != nostrcal.KindTimeEvent {
		return CalendarEvent{}, fmt.Errorf("kind %d is not a calendar event", r.Kind)
	}

	d := r.FirstTag(TagIdentifier)
	if d == nil {
		return CalendarEvent{}, fmt.Errorf("record %s has no identifier tag", r.ID)
	}

	ev := CalendarEvent{
		ID:         r.ID,
		Author:     r.Author,
		Kind:       r.Kind,
		Identifier: d.Value(),
		CreatedAt:  r.CreatedAt,
		Title:      r.TagValue(TagTitle),
		Summary:    r.TagValue(TagSummary),
		Image:      r.TagValue(TagImage),
		Content:    r.Content,
		Locations:  r.TagValues(TagLocation),
		Geohash:    r.TagValue(TagGeohash),
		Record:     r,
	}

	start, err := parseTemporal(r, r.TagValue(TagStart), TagStartZone)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	ev.Start = start

	if raw := r.TagValue(TagEnd); raw != "" {
		end, err := parseTemporal(r, raw, TagEndZone)
		if err == nil {
			if !end.IsDate() && end.Unix < ev.Start.Unix {
				end.Unix = ev.Start.Unix
			}
			ev.End = &end
		}
		// an unparseable end degrades to an open-ended event
	}

	return ev, nil
}

func parseTemporal(r nostrcal.Record, raw, zoneTag string) (Temporal, error) {
	if raw == "" {
		return Temporal{}, fmt.Errorf("missing start")
	}

	if r.Kind == nostrcal.KindDateEvent {
		if !dateForm.MatchString(strings.TrimSpace(raw)) {
			return Temporal{}, fmt.Errorf("invalid date %q", raw)
		}
		return Temporal{Date: strings.TrimSpace(raw)}, nil
	}

	if _, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err != nil {
		return Temporal{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return Temporal{
		Unix: wallclock.ParseTimestamp(raw).Unix(),
		Zone: r.TagValue(zoneTag),
	}, nil
}
