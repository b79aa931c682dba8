package domain

// Tag names read and written by the core. The shape of these tuples is the
// only wire surface this module owns.
const (
	TagIdentifier = "d"
	TagTitle      = "title"
	TagSummary    = "summary"
	TagImage      = "image"
	TagStart      = "start"
	TagEnd        = "end"
	TagStartZone  = "start_tzid"
	TagEndZone    = "end_tzid"
	TagLocation   = "location"
	TagGeohash    = "g"
	TagReference  = "e"
	TagAddress    = "a"
	TagStatus     = "status"
	TagRule       = "rrule"
)

// RSVP status values.
const (
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusTentative = "tentative"
)
