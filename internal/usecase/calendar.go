package usecase

import (
	"context"
	"log/slog"
	"sort"

	"nostrcal"
	"nostrcal/geo"
	"nostrcal/internal/domain"
	"nostrcal/resolve"
	"nostrcal/tz"
)

// CalendarUsecase turns raw record streams into display-ready calendar
// entities. Resolution is O(n) and re-run wholesale on every new batch;
// there is no incremental patching.
type CalendarUsecase struct {
	gateway  RelayGateway
	cache    RecordCache
	resolver *resolve.Resolver
	zones    *tz.Resolver
}

func NewCalendarUsecase(gateway RelayGateway, cache RecordCache) *CalendarUsecase {
	return &CalendarUsecase{
		gateway:  gateway,
		cache:    cache,
		resolver: resolve.New(),
		zones:    tz.NewResolver(nil),
	}
}

// ListEvents fetches, resolves and decodes calendar events matching the
// filter, sorted chronologically. Invalid upstream records are dropped.
func (uc *CalendarUsecase) ListEvents(ctx context.Context, filter nostrcal.Filter) ([]domain.CalendarEvent, error) {
	if len(filter.Kinds) == 0 {
		filter.Kinds = []int{nostrcal.KindDateEvent, nostrcal.KindTimeEvent}
	}

	records, err := uc.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	resolved := uc.resolver.Resolve(records)
	uc.mirror(ctx, resolved)

	events := make([]domain.CalendarEvent, 0, len(resolved))
	for _, rec := range resolved {
		ev, err := domain.EventFromRecord(rec)
		if err != nil {
			continue
		}
		if ev.Start.Zone == "" {
			ev.Start.Zone = uc.zones.Resolve(rec)
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartUnix() < events[j].StartUnix()
	})

	return events, nil
}

// GetEvent resolves the current version of a single logical entity.
func (uc *CalendarUsecase) GetEvent(ctx context.Context, coord nostrcal.Coordinate) (domain.CalendarEvent, error) {
	filter := nostrcal.Filter{
		Kinds:   []int{coord.Kind},
		Authors: []string{coord.Author},
		Tags:    map[string][]string{domain.TagIdentifier: {coord.Identifier}},
	}

	events, err := uc.ListEvents(ctx, filter)
	if err != nil {
		return domain.CalendarEvent{}, err
	}

	for _, ev := range events {
		if ev.Coordinate() == coord {
			return ev, nil
		}
	}
	return domain.CalendarEvent{}, domain.NotFoundError{Resource: "event"}
}

// ListRSVPs aggregates the current answer per author for the event. Both
// reference forms are fetched because edits change the event ID but not
// its coordinate.
func (uc *CalendarUsecase) ListRSVPs(ctx context.Context, ev domain.CalendarEvent) ([]domain.RSVP, error) {
	coord := ev.Coordinate().String()

	byAddress, err := uc.fetch(ctx, nostrcal.Filter{
		Kinds: []int{nostrcal.KindRSVP},
		Tags:  map[string][]string{domain.TagAddress: {coord}},
	})
	if err != nil {
		return nil, err
	}
	byID, err := uc.fetch(ctx, nostrcal.Filter{
		Kinds: []int{nostrcal.KindRSVP},
		Tags:  map[string][]string{domain.TagReference: {ev.ID}},
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var merged []nostrcal.Record
	for _, rec := range append(byAddress, byID...) {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		merged = append(merged, rec)
	}

	current := uc.resolver.AggregateAttachments(ev.Record, merged)

	rsvps := make([]domain.RSVP, 0, len(current))
	for _, rec := range current {
		rsvp, err := domain.RSVPFromRecord(rec)
		if err != nil {
			continue
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, nil
}

// SortByDistance decorates each event with its distance from origin and
// sorts ascending. Events without resolvable coordinates keep a nil
// distance and sort after all others, preserving their relative order.
func (uc *CalendarUsecase) SortByDistance(events []domain.CalendarEvent, origin geo.Point) []domain.CalendarEvent {
	out := append([]domain.CalendarEvent(nil), events...)

	for i := range out {
		if p, ok := out[i].Point(); ok {
			d := geo.Distance(origin, p)
			out[i].Distance = &d
		} else {
			out[i].Distance = nil
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Distance, out[j].Distance
		switch {
		case di != nil && dj != nil:
			return *di < *dj
		case di != nil:
			return true
		default:
			return false
		}
	})

	return out
}

// fetch serves the filter from the gateway, degrading to the local mirror
// when the fetch fails. The mirror holds no tag index, so only the kind
// part of the filter applies to the fallback.
func (uc *CalendarUsecase) fetch(ctx context.Context, filter nostrcal.Filter) ([]nostrcal.Record, error) {
	records, err := uc.gateway.Fetch(ctx, filter)
	if err == nil {
		return records, nil
	}
	if uc.cache == nil {
		return nil, err
	}

	slog.WarnContext(ctx, "fetch failed, serving mirrored records",
		slog.String("error", err.Error()),
	)

	cached, cerr := uc.cache.GetAll(ctx)
	if cerr != nil {
		return nil, err
	}

	var out []nostrcal.Record
	for _, rec := range cached {
		if kindMatches(rec.Kind, filter.Kinds) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func kindMatches(kind int, kinds []int) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// mirror writes resolved records to the local cache. The mirror is best
// effort: failures are logged and swallowed.
func (uc *CalendarUsecase) mirror(ctx context.Context, records []nostrcal.Record) {
	if uc.cache == nil {
		return
	}
	for _, rec := range records {
		if err := uc.cache.Put(ctx, rec); err != nil {
			slog.DebugContext(ctx, "record mirror write failed",
				slog.String("id", rec.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}
