package domain

import (
	"fmt"

	"nostrcal"
)

// RSVP is the typed view of an attachment record answering an event. It
// may reference the event by immutable ID, by coordinate, or both; the
// coordinate form survives event edits.
type RSVP struct {
	ID              string `json:"id"`
	Author          string `json:"author"`
	CreatedAt       int64  `json:"createdAt"`
	Status          string `json:"status"`
	EventID         string `json:"eventId,omitempty"`
	EventCoordinate string `json:"eventCoordinate,omitempty"`
	Note            string `json:"note,omitempty"`
}

// RSVPFromRecord decodes an RSVP record. Unknown status values degrade to
// tentative rather than dropping the answer.
func RSVPFromRecord(r nostrcal.Record) (RSVP, error) {
	if r.Kind != nostrcal.KindRSVP {
		return RSVP{}, fmt.Errorf("kind %d is not an rsvp", r.Kind)
	}

	rsvp := RSVP{
		ID:              r.ID,
		Author:          r.Author,
		CreatedAt:       r.CreatedAt,
		Status:          r.TagValue(TagStatus),
		EventID:         r.TagValue(TagReference),
		EventCoordinate: r.TagValue(TagAddress),
		Note:            r.Content,
	}

	if rsvp.EventID == "" && rsvp.EventCoordinate == "" {
		return RSVP{}, fmt.Errorf("rsvp %s references no event", r.ID)
	}

	switch rsvp.Status {
	case StatusAccepted, StatusDeclined, StatusTentative:
	default:
		rsvp.Status = StatusTentative
	}

	return rsvp, nil
}
