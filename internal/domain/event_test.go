package domain

import (
	"testing"

	"nostrcal"
)

func TestEventFromRecordTimed(t *testing.T) {
	r := nostrcal.Record{
		ID:        "e1",
		Author:    "A",
		Kind:      nostrcal.KindTimeEvent,
		CreatedAt: 1000,
		Content:   "bring snacks",
		Tags: []nostrcal.Tag{
			{"d", "picnic"},
			{"title", "Picnic"},
			{"start", "1714917600"},
			{"end", "1714924800"},
			{"start_tzid", "Europe/Madrid"},
			{"location", "Retiro Park"},
			{"g", "ezjmgt"},
		},
	}

	ev, err := EventFromRecord(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Title != "Picnic" || ev.Identifier != "picnic" {
		t.Fatalf("unexpected view: %+v", ev)
	}
	if ev.Start.Unix != 1714917600 || ev.Start.Zone != "Europe/Madrid" {
		t.Fatalf("unexpected start: %+v", ev.Start)
	}
	if ev.End == nil || ev.End.Unix != 1714924800 {
		t.Fatalf("unexpected end: %+v", ev.End)
	}
	if ev.Coordinate().String() != "31923:A:picnic" {
		t.Fatalf("unexpected coordinate %s", ev.Coordinate())
	}
	if _, ok := ev.Point(); !ok {
		t.Fatalf("expected geohash to decode")
	}
}

func TestEventFromRecordDateBased(t *testing.T) {
	r := nostrcal.Record{
		ID:     "e2",
		Author: "A",
		Kind:   nostrcal.KindDateEvent,
		Tags: []nostrcal.Tag{
			{"d", "conf"},
			{"start", "2024-05-05"},
			{"end", "2024-05-07"},
		},
	}

	ev, err := EventFromRecord(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.Start.IsDate() || ev.Start.Date != "2024-05-05" {
		t.Fatalf("unexpected start: %+v", ev.Start)
	}
	if ev.Start.Display(true) != "2024-05-05" {
		t.Fatalf("date display must not carry a time")
	}
}

func TestEventFromRecordClampsReversedEnd(t *testing.T) {
	r := nostrcal.Record{
		ID:   "e3",
		Kind: nostrcal.KindTimeEvent,
		Tags: []nostrcal.Tag{
			{"d", "x"},
			{"start", "2000"},
			{"end", "1000"},
		},
	}

	ev, err := EventFromRecord(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.End == nil || ev.End.Unix != ev.Start.Unix {
		t.Fatalf("expected reversed end clamped to start, got %+v", ev.End)
	}
}

func TestEventFromRecordRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		rec  nostrcal.Record
	}{
		{"wrong kind", nostrcal.Record{Kind: 1, Tags: []nostrcal.Tag{{"d", "x"}, {"start", "1000"}}}},
		{"missing d", nostrcal.Record{Kind: nostrcal.KindTimeEvent, Tags: []nostrcal.Tag{{"start", "1000"}}}},
		{"missing start", nostrcal.Record{Kind: nostrcal.KindTimeEvent, Tags: []nostrcal.Tag{{"d", "x"}}}},
		{"bad date", nostrcal.Record{Kind: nostrcal.KindDateEvent, Tags: []nostrcal.Tag{{"d", "x"}, {"start", "yesterday"}}}},
		{"bad timestamp", nostrcal.Record{Kind: nostrcal.KindTimeEvent, Tags: []nostrcal.Tag{{"d", "x"}, {"start", "4pm"}}}},
	}

	for _, tc := range cases {
		if _, err := EventFromRecord(tc.rec); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestRSVPFromRecord(t *testing.T) {
	r := nostrcal.Record{
		ID:        "r1",
		Author:    "B",
		Kind:      nostrcal.KindRSVP,
		CreatedAt: 2000,
		Tags: []nostrcal.Tag{
			{"a", "31923:A:picnic"},
			{"status", "accepted"},
		},
	}

	rsvp, err := RSVPFromRecord(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsvp.Status != StatusAccepted || rsvp.EventCoordinate != "31923:A:picnic" {
		t.Fatalf("unexpected view: %+v", rsvp)
	}

	// unknown status degrades instead of dropping
	r.Tags[1] = nostrcal.Tag{"status", "maybe??"}
	rsvp, err = RSVPFromRecord(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsvp.Status != StatusTentative {
		t.Fatalf("expected tentative, got %s", rsvp.Status)
	}

	// no reference at all is invalid
	if _, err := RSVPFromRecord(nostrcal.Record{Kind: nostrcal.KindRSVP}); err == nil {
		t.Fatalf("expected error for reference-less rsvp")
	}
}
