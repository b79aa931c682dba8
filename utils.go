package nostrcal

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate identifies a logical addressable entity across its edit
// history. Its string form is "kind:author:identifier".
type Coordinate struct {
	Kind       int
	Author     string
	Identifier string
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%s:%s", c.Kind, c.Author, c.Identifier)
}

// ParseCoordinate parses the "kind:author:identifier" form. The identifier
// may itself contain colons, so only the first two separators split.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", s)
	}
	kind, err := strconv.Atoi(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid coordinate kind %q", parts[0])
	}
	return Coordinate{Kind: kind, Author: parts[1], Identifier: parts[2]}, nil
}

// IsAddressable reports whether kind lies in the replaceable band.
func IsAddressable(kind int) bool {
	return kind >= AddressableKindMin && kind < AddressableKindMax
}

// CoordinateOf derives the record's coordinate. ok is false when the record
// is not addressable or is missing its "d" tag, in which case it has no
// coordinate and must not be coalesced with anything.
func CoordinateOf(r Record) (Coordinate, bool) {
	if !IsAddressable(r.Kind) {
		return Coordinate{}, false
	}
	d := r.FirstTag("d")
	if d == nil {
		return Coordinate{}, false
	}
	return Coordinate{Kind: r.Kind, Author: r.Author, Identifier: d.Value()}, true
}
