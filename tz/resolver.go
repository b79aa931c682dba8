// Package tz guesses the IANA timezone of a temporal record from its tags,
// falling back to a location-name lookup table.
package tz

import (
	"strings"
	"time"

	"nostrcal"
)

// Generic timezone tag names tried after the explicit start/end tags,
// in this order.
var genericTags = []string{"timezone", "tzid", "tz"}

// Location maps a lower-case place name to an IANA zone identifier. The
// table is ordered: the substring fallback returns the first entry that
// matches during a single linear scan.
type Location struct {
	Name string
	Zone string
}

// Resolver resolves records to timezone identifiers. The location table is
// immutable static data injected at construction.
type Resolver struct {
	table []Location
}

// NewResolver builds a resolver over the given table. A nil table uses the
// built-in one.
func NewResolver(table []Location) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{table: table}
}

// Resolve returns the best-guess zone identifier for the record, or ""
// when nothing resolves. Callers treat "" as "use the viewer's local
// timezone". Precedence: explicit start tag, explicit end tag (timed kinds
// only), generic tags, then the location-name table.
func (r *Resolver) Resolve(rec nostrcal.Record) string {
	if zone := valid(rec.TagValue("start_tzid")); zone != "" {
		return zone
	}
	if rec.Kind == nostrcal.KindTimeEvent {
		if zone := valid(rec.TagValue("end_tzid")); zone != "" {
			return zone
		}
	}
	for _, name := range genericTags {
		if zone := valid(rec.TagValue(name)); zone != "" {
			return zone
		}
	}
	return r.lookupLocation(rec.TagValue("location"))
}

// lookupLocation tries an exact table hit first, then the first substring
// containment found while scanning the table once. First-match, not
// best-match; "South Africa" can resolve against an earlier unrelated key,
// which mirrors the upstream behavior on purpose.
func (r *Resolver) lookupLocation(location string) string {
	needle := strings.ToLower(strings.TrimSpace(location))
	if needle == "" {
		return ""
	}

	for _, entry := range r.table {
		if entry.Name == needle {
			return valid(entry.Zone)
		}
	}

	for _, entry := range r.table {
		if strings.Contains(needle, entry.Name) || strings.Contains(entry.Name, needle) {
			if zone := valid(entry.Zone); zone != "" {
				return zone
			}
		}
	}

	return ""
}

// valid returns the identifier when the runtime timezone database accepts
// it, "" otherwise.
func valid(zone string) string {
	if zone == "" {
		return ""
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return ""
	}
	return zone
}
