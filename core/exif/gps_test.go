package exif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyreCollins/img-metadata/core"
)

func gpsTable(latRef string, lat []core.Rational, lonRef string, lon []core.Rational) core.TagTable {
	return core.TagTable{
		"GPSLatitudeRef":  {Kind: core.KindStr, Str: latRef},
		"GPSLatitude":     {Kind: core.KindRat, Rats: lat},
		"GPSLongitudeRef": {Kind: core.KindStr, Str: lonRef},
		"GPSLongitude":    {Kind: core.KindRat, Rats: lon},
	}
}

func triple(d, m, s int64) []core.Rational {
	return []core.Rational{{Num: d, Den: 1}, {Num: m, Den: 1}, {Num: s, Den: 1}}
}

func TestGPSAbsent(t *testing.T) {
	coord, err := GPS(core.TagTable{"Make": {Kind: core.KindStr, Str: "Canon"}})
	assert.NoError(t, err)
	assert.Nil(t, coord)
}

func TestGPSIncompletePair(t *testing.T) {
	table := core.TagTable{
		"GPSLatitudeRef": {Kind: core.KindStr, Str: "N"},
		"GPSLatitude":    {Kind: core.KindRat, Rats: triple(40, 26, 46)},
	}
	_, err := GPS(table)
	assert.Error(t, err)
}

func TestGPSRefNegation(t *testing.T) {
	north := gpsTable("N", triple(40, 26, 46), "E", triple(79, 56, 55))
	south := gpsTable("S", triple(40, 26, 46), "W", triple(79, 56, 55))

	n, err := GPS(north)
	require.NoError(t, err)
	s, err := GPS(south)
	require.NoError(t, err)

	assert.InDelta(t, n.Latitude, -s.Latitude, 1e-9)
	assert.InDelta(t, n.Longitude, -s.Longitude, 1e-9)
	assert.Positive(t, n.Latitude)
	assert.Negative(t, s.Latitude)
}

func TestGPSZeroDenominator(t *testing.T) {
	lat := []core.Rational{{Num: 40, Den: 1}, {Num: 26, Den: 0}, {Num: 46, Den: 1}}
	_, err := GPS(gpsTable("N", lat, "E", triple(79, 56, 55)))
	assert.Error(t, err)
}

func TestGPSRangeEnforced(t *testing.T) {
	_, err := GPS(gpsTable("N", triple(100, 0, 0), "E", triple(10, 0, 0)))
	assert.Error(t, err, "latitude beyond 90 must be rejected")

	_, err = GPS(gpsTable("N", triple(10, 0, 0), "E", triple(200, 0, 0)))
	assert.Error(t, err, "longitude beyond 180 must be rejected")
}

func TestGPSWithinRange(t *testing.T) {
	coord, err := GPS(gpsTable("S", triple(89, 59, 59), "W", triple(179, 59, 59)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, coord.Latitude, -90.0)
	assert.LessOrEqual(t, coord.Latitude, 90.0)
	assert.GreaterOrEqual(t, coord.Longitude, -180.0)
	assert.LessOrEqual(t, coord.Longitude, 180.0)
}

func TestGPSAltitude(t *testing.T) {
	table := gpsTable("N", triple(40, 0, 0), "E", triple(79, 0, 0))
	table["GPSAltitude"] = core.TagValue{Kind: core.KindRat, Rats: []core.Rational{{Num: 1234, Den: 10}}}

	coord, err := GPS(table)
	require.NoError(t, err)
	require.NotNil(t, coord.Altitude)
	assert.InDelta(t, 123.4, *coord.Altitude, 1e-9)

	// Ref 1 marks below sea level.
	table["GPSAltitudeRef"] = core.TagValue{Kind: core.KindInt, Ints: []int64{1}}
	coord, err = GPS(table)
	require.NoError(t, err)
	assert.InDelta(t, -123.4, *coord.Altitude, 1e-9)
}

func TestGPSAltitudeAbsent(t *testing.T) {
	coord, err := GPS(gpsTable("N", triple(40, 0, 0), "E", triple(79, 0, 0)))
	require.NoError(t, err)
	assert.Nil(t, coord.Altitude)
}
