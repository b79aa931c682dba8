package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeKnownValues(t *testing.T) {
	cases := []struct {
		lat, lng  float64
		precision int
		want      string
	}{
		{57.64911, 10.40744, 11, "u4pruydqqvj"},
		{40.416775, -3.703790, 6, "ezjmgt"}, // Madrid
		{0, 0, 4, "s000"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Encode(tc.lat, tc.lng, tc.precision))
	}
}

func TestRoundTripTolerance(t *testing.T) {
	points := []Point{
		{40.416775, -3.703790},
		{-33.865143, 151.209900},
		{64.133333, -21.933333},
		{0.5, 0.5},
		{-89.9, 179.9},
	}

	for _, p := range points {
		// 9 characters: cell half-height ≈ 2.4m latitude
		got, ok := Decode(Encode(p.Lat, p.Lng, 9))
		require.True(t, ok)
		require.InDelta(t, p.Lat, got.Lat, 180.0/(1<<22))
		require.InDelta(t, p.Lng, got.Lng, 360.0/(1<<23))

		// 12 characters: well under a meter
		got, ok = Decode(Encode(p.Lat, p.Lng, 12))
		require.True(t, ok)
		require.Less(t, Distance(p, got), 0.001) // kilometers
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, hash := range []string{"", "abc!", "aiol"} {
		_, ok := Decode(hash)
		require.False(t, ok, "hash %q", hash)
	}
}

func TestDistanceSymmetryAndIdentity(t *testing.T) {
	a := Point{40.416775, -3.703790}  // Madrid
	b := Point{48.856613, 2.352222}   // Paris
	c := Point{-33.865143, 151.2099}  // Sydney

	require.Equal(t, Distance(a, b), Distance(b, a))
	require.Equal(t, 0.0, Distance(a, a))

	// Madrid–Paris is a little over a thousand kilometers
	d := Distance(a, b)
	require.InDelta(t, 1053, d, 15)

	require.Greater(t, Distance(a, c), 15000.0)
	require.Less(t, Distance(a, c), math.Pi*earthRadiusKm)
}
