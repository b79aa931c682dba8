// Package geo provides a geohash codec and great-circle distances for
// location-based sorting of calendar entries.
package geo

import "strings"

const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Encode produces a geohash of the given character length: base-32, five
// bits per character, alternating longitude/latitude binary subdivision.
func Encode(lat, lng float64, precision int) string {
	if precision < 1 {
		precision = 1
	}

	latLo, latHi := -90.0, 90.0
	lngLo, lngHi := -180.0, 180.0

	var sb strings.Builder
	sb.Grow(precision)

	even := true // even bits subdivide longitude
	bit := 0
	idx := 0

	for sb.Len() < precision {
		if even {
			mid := (lngLo + lngHi) / 2
			if lng >= mid {
				idx = idx<<1 | 1
				lngLo = mid
			} else {
				idx <<= 1
				lngHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if lat >= mid {
				idx = idx<<1 | 1
				latLo = mid
			} else {
				idx <<= 1
				latHi = mid
			}
		}
		even = !even

		if bit++; bit == 5 {
			sb.WriteByte(base32[idx])
			bit = 0
			idx = 0
		}
	}

	return sb.String()
}

// Decode returns the midpoint of the bounding cell the hash describes, an
// approximation of the encoded point. ok is false for malformed hashes or
// results outside the valid coordinate range.
func Decode(hash string) (Point, bool) {
	if hash == "" {
		return Point{}, false
	}

	latLo, latHi := -90.0, 90.0
	lngLo, lngHi := -180.0, 180.0
	even := true

	for _, c := range strings.ToLower(hash) {
		idx := strings.IndexRune(base32, c)
		if idx < 0 {
			return Point{}, false
		}
		for mask := 16; mask > 0; mask >>= 1 {
			if even {
				mid := (lngLo + lngHi) / 2
				if idx&mask != 0 {
					lngLo = mid
				} else {
					lngHi = mid
				}
			} else {
				mid := (latLo + latHi) / 2
				if idx&mask != 0 {
					latLo = mid
				} else {
					latHi = mid
				}
			}
			even = !even
		}
	}

	p := Point{
		Lat: (latLo + latHi) / 2,
		Lng: (lngLo + lngHi) / 2,
	}
	if !p.valid() {
		return Point{}, false
	}
	return p, true
}
