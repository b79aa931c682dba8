package usecase

import (
	"context"
	"strconv"
	"testing"

	"nostrcal"
	"nostrcal/geo"
	"nostrcal/internal/domain"
)

type mockGateway struct {
	records []nostrcal.Record
	filters []nostrcal.Filter
	err     error
}

func (m *mockGateway) Fetch(ctx context.Context, filter nostrcal.Filter) ([]nostrcal.Record, error) {
	m.filters = append(m.filters, filter)
	if m.err != nil {
		return nil, m.err
	}
	var out []nostrcal.Record
	for _, rec := range m.records {
		if matches(rec, filter) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func matches(rec nostrcal.Record, filter nostrcal.Filter) bool {
	if len(filter.Kinds) > 0 {
		hit := false
		for _, k := range filter.Kinds {
			if rec.Kind == k {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}
	for name, values := range filter.Tags {
		hit := false
		for _, want := range values {
			for _, got := range rec.TagValues(name) {
				if got == want {
					hit = true
				}
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

type mockCache struct {
	puts []nostrcal.Record
	err  error
}

func (m *mockCache) Put(ctx context.Context, rec nostrcal.Record) error {
	m.puts = append(m.puts, rec)
	return m.err
}

func (m *mockCache) GetAll(ctx context.Context) ([]nostrcal.Record, error) {
	return m.puts, nil
}

func timedEvent(id, author string, createdAt int64, identifier, title string, start int64) nostrcal.Record {
	return nostrcal.Record{
		ID:        id,
		Author:    author,
		Kind:      nostrcal.KindTimeEvent,
		CreatedAt: createdAt,
		Tags: []nostrcal.Tag{
			{"d", identifier},
			{"title", title},
			{"start", strconv.FormatInt(start, 10)},
		},
	}
}

func TestListEventsResolvesLatest(t *testing.T) {
	gw := &mockGateway{records: []nostrcal.Record{
		timedEvent("e1", "A", 1000, "x", "old", 1714917600),
		timedEvent("e2", "A", 2000, "x", "new", 1714917600),
	}}
	cache := &mockCache{}
	uc := NewCalendarUsecase(gw, cache)

	events, err := uc.ListEvents(context.Background(), nostrcal.Filter{})
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != "e2" || events[0].Title != "new" {
		t.Fatalf("expected single latest event, got %+v", events)
	}
	if len(cache.puts) != 1 {
		t.Fatalf("expected resolved records mirrored, got %d puts", len(cache.puts))
	}
}

func TestListEventsSwallowsCacheFailures(t *testing.T) {
	gw := &mockGateway{records: []nostrcal.Record{
		timedEvent("e1", "A", 1000, "x", "t", 1714917600),
	}}
	cache := &mockCache{err: context.DeadlineExceeded}
	uc := NewCalendarUsecase(gw, cache)

	events, err := uc.ListEvents(context.Background(), nostrcal.Filter{})
	if err != nil {
		t.Fatalf("cache failure must not surface: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected event despite cache failure")
	}
}

func TestListEventsFallsBackToMirror(t *testing.T) {
	gw := &mockGateway{err: context.DeadlineExceeded}
	cache := &mockCache{puts: []nostrcal.Record{
		timedEvent("e1", "A", 1000, "x", "mirrored", 1714917600),
	}}
	uc := NewCalendarUsecase(gw, cache)

	events, err := uc.ListEvents(context.Background(), nostrcal.Filter{})
	if err != nil {
		t.Fatalf("expected mirror fallback, got %v", err)
	}
	if len(events) != 1 || events[0].Title != "mirrored" {
		t.Fatalf("expected mirrored event, got %+v", events)
	}
}

func TestListEventsFailsWithoutMirror(t *testing.T) {
	gw := &mockGateway{err: context.DeadlineExceeded}
	uc := NewCalendarUsecase(gw, nil)

	_, err := uc.ListEvents(context.Background(), nostrcal.Filter{})
	if err == nil {
		t.Fatalf("expected fetch error to surface when no mirror exists")
	}
}

func TestGetEvent(t *testing.T) {
	gw := &mockGateway{records: []nostrcal.Record{
		timedEvent("e1", "A", 1000, "x", "mine", 1714917600),
		timedEvent("e9", "B", 1000, "x", "other author", 1714917600),
	}}
	uc := NewCalendarUsecase(gw, nil)

	coord := nostrcal.Coordinate{Kind: nostrcal.KindTimeEvent, Author: "A", Identifier: "x"}
	ev, err := uc.GetEvent(context.Background(), coord)
	if err != nil {
		t.Fatalf("get event failed: %v", err)
	}
	if ev.ID != "e1" {
		t.Fatalf("expected e1 got %s", ev.ID)
	}

	_, err = uc.GetEvent(context.Background(), nostrcal.Coordinate{Kind: nostrcal.KindTimeEvent, Author: "Z", Identifier: "none"})
	if err == nil {
		t.Fatalf("expected not found")
	}
}

func TestListRSVPsAcceptsBothReferenceForms(t *testing.T) {
	event := timedEvent("e2", "A", 2000, "x", "party", 1714917600)
	coord := "31923:A:x"

	gw := &mockGateway{records: []nostrcal.Record{
		event,
		{ID: "r1", Author: "B", Kind: nostrcal.KindRSVP, CreatedAt: 1000,
			Tags: []nostrcal.Tag{{"a", coord}, {"status", "tentative"}}},
		{ID: "r2", Author: "B", Kind: nostrcal.KindRSVP, CreatedAt: 3000,
			Tags: []nostrcal.Tag{{"e", "e2"}, {"status", "accepted"}}},
		{ID: "r3", Author: "C", Kind: nostrcal.KindRSVP, CreatedAt: 1500,
			Tags: []nostrcal.Tag{{"a", coord}, {"status", "declined"}}},
	}}
	uc := NewCalendarUsecase(gw, nil)

	ev, err := domain.EventFromRecord(event)
	if err != nil {
		t.Fatalf("event view failed: %v", err)
	}

	rsvps, err := uc.ListRSVPs(context.Background(), ev)
	if err != nil {
		t.Fatalf("list rsvps failed: %v", err)
	}
	if len(rsvps) != 2 {
		t.Fatalf("expected one current rsvp per author, got %+v", rsvps)
	}

	byAuthor := map[string]domain.RSVP{}
	for _, r := range rsvps {
		byAuthor[r.Author] = r
	}
	if byAuthor["B"].Status != domain.StatusAccepted {
		t.Fatalf("expected newest answer to win, got %+v", byAuthor["B"])
	}
	if byAuthor["C"].Status != domain.StatusDeclined {
		t.Fatalf("expected coordinate reference to match, got %+v", byAuthor["C"])
	}
}

func TestSortByDistance(t *testing.T) {
	uc := NewCalendarUsecase(&mockGateway{}, nil)

	madrid := domain.CalendarEvent{ID: "madrid", Geohash: "ezjmgt"}
	paris := domain.CalendarEvent{ID: "paris", Geohash: "u09tvw"}
	nowhere1 := domain.CalendarEvent{ID: "nowhere1"}
	nowhere2 := domain.CalendarEvent{ID: "nowhere2"}

	origin := geo.Point{Lat: 40.4168, Lng: -3.7038} // Madrid

	sorted := uc.SortByDistance([]domain.CalendarEvent{nowhere1, paris, nowhere2, madrid}, origin)

	order := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID}
	want := []string{"madrid", "paris", "nowhere1", "nowhere2"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v", order)
		}
	}
	if sorted[0].Distance == nil || sorted[2].Distance != nil {
		t.Fatalf("distance decoration wrong: %+v", sorted)
	}
}
