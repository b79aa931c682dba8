// Package resolve reconstructs the current view of logical entities out of
// a stream of immutable records. Edits arrive as new records sharing a
// coordinate; the resolver keeps the newest version per coordinate and
// aggregates dependent attachment records against the result.
package resolve

import (
	"nostrcal"
)

// Resolver is a pure, stateless transformation; it is safe for concurrent
// use. Attachment kinds are injected at construction rather than read from
// ambient globals.
type Resolver struct {
	attachmentKinds map[int]struct{}
}

// New returns a resolver treating the given kinds as attachments. With no
// arguments the RSVP kind is the only attachment kind.
func New(attachmentKinds ...int) *Resolver {
	if len(attachmentKinds) == 0 {
		attachmentKinds = []int{nostrcal.KindRSVP}
	}
	set := make(map[int]struct{}, len(attachmentKinds))
	for _, k := range attachmentKinds {
		set[k] = struct{}{}
	}
	return &Resolver{attachmentKinds: set}
}

func (r *Resolver) isAttachment(kind int) bool {
	_, ok := r.attachmentKinds[kind]
	return ok
}

// Resolve collapses the record stream into current entities. Records are
// visited in arrival order; the result preserves the slot of the first
// record seen for each coordinate, so list positions are stable across
// resolution passes. Malformed records are dropped, never surfaced.
func (r *Resolver) Resolve(records []nostrcal.Record) []nostrcal.Record {
	out := make([]nostrcal.Record, 0, len(records))
	slots := make(map[nostrcal.Coordinate]int)

	for _, rec := range records {
		// Attachments are dependent records; they never coalesce.
		if r.isAttachment(rec.Kind) {
			out = append(out, rec)
			continue
		}

		if !nostrcal.IsAddressable(rec.Kind) {
			out = append(out, rec)
			continue
		}

		// Addressable records without a "d" tag are invalid upstream
		// data; drop them rather than abort the batch.
		if rec.FirstTag("d") == nil {
			continue
		}

		coord, _ := nostrcal.CoordinateOf(rec)
		slot, seen := slots[coord]
		if !seen {
			slots[coord] = len(out)
			out = append(out, rec)
			continue
		}

		// Strictly greater wins; on a tie the first-seen record stays.
		if rec.CreatedAt > out[slot].CreatedAt {
			out[slot] = rec
		}
	}

	return out
}

// AggregateAttachments filters attachments referencing the entity, either
// by its immutable ID ("e" tag) or by its coordinate string ("a" tag), and
// keeps only the newest attachment per author. Edits change the entity ID
// but not its coordinate, so both reference forms must match.
func (r *Resolver) AggregateAttachments(entity nostrcal.Record, attachments []nostrcal.Record) []nostrcal.Record {
	coord, hasCoord := nostrcal.CoordinateOf(entity)
	coordStr := ""
	if hasCoord {
		coordStr = coord.String()
	}

	current := make(map[string]int)
	var out []nostrcal.Record

	for _, att := range attachments {
		if !references(att, entity.ID, coordStr) {
			continue
		}
		slot, seen := current[att.Author]
		if !seen {
			current[att.Author] = len(out)
			out = append(out, att)
			continue
		}
		if att.CreatedAt > out[slot].CreatedAt {
			out[slot] = att
		}
	}

	return out
}

func references(att nostrcal.Record, id string, coord string) bool {
	for _, v := range att.TagValues("e") {
		if id != "" && v == id {
			return true
		}
	}
	if coord == "" {
		return false
	}
	for _, v := range att.TagValues("a") {
		if v == coord {
			return true
		}
	}
	return false
}
