package nostrcal

// Calendar record kinds (NIP-52).
const (
	KindDateEvent = 31922 // all-day event, start/end are YYYY-MM-DD dates
	KindTimeEvent = 31923 // timed event, start/end are unix seconds
	KindCalendar  = 31924
	KindRSVP      = 31925
)

// Addressable kind band. Records inside the band are versions of a logical
// entity keyed by (kind, author, "d" tag); records outside are standalone.
const (
	AddressableKindMin = 30000
	AddressableKindMax = 40000
)

// Tag is an ordered tuple of strings. The first element is the tag name,
// the remainder are positional values. A tag name may repeat on a record.
type Tag []string

func (t Tag) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

func (t Tag) Value() string {
	if len(t) < 2 {
		return ""
	}
	return t[1]
}

// Record is an immutable unit fetched from the event store. The core only
// ever reads it; edits arrive as new records, never as updates.
type Record struct {
	ID        string `json:"id"`
	Author    string `json:"pubkey"`
	CreatedAt int64  `json:"created_at"`
	Kind      int    `json:"kind"`
	Content   string `json:"content"`
	Tags      []Tag  `json:"tags"`
}

// FirstTag returns the first tag with the given name, or nil.
func (r Record) FirstTag(name string) Tag {
	for _, t := range r.Tags {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// TagValue returns the first value of the first tag with the given name.
func (r Record) TagValue(name string) string {
	return r.FirstTag(name).Value()
}

// TagValues returns the first value of every tag with the given name,
// preserving record order.
func (r Record) TagValues(name string) []string {
	var values []string
	for _, t := range r.Tags {
		if t.Name() == name && len(t) > 1 {
			values = append(values, t[1])
		}
	}
	return values
}

// Filter is the query shape accepted by the record-fetch collaborator.
type Filter struct {
	IDs     []string            `json:"ids,omitempty"`
	Authors []string            `json:"authors,omitempty"`
	Kinds   []int               `json:"kinds,omitempty"`
	Tags    map[string][]string `json:"-"`
	Since   *int64              `json:"since,omitempty"`
	Until   *int64              `json:"until,omitempty"`
	Limit   int                 `json:"limit,omitempty"`
}
