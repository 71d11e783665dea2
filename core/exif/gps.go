package exif

import (
	"fmt"
	"strings"

	"github.com/SyreCollins/img-metadata/core"
)

// GPS derives a signed-degree coordinate from a decoded tag table.
// It returns (nil, nil) when the table carries no GPS data at all; a table
// with GPS tags that fail to convert returns an error and no coordinate.
func GPS(table core.TagTable) (*core.GpsCoordinate, error) {
	lat, latOK := table["GPSLatitude"]
	lon, lonOK := table["GPSLongitude"]
	if !latOK && !lonOK {
		return nil, nil
	}
	if !latOK || !lonOK {
		return nil, fmt.Errorf("gps: incomplete coordinate pair")
	}

	latitude, err := degrees(lat)
	if err != nil {
		return nil, fmt.Errorf("gps: latitude: %w", err)
	}
	longitude, err := degrees(lon)
	if err != nil {
		return nil, fmt.Errorf("gps: longitude: %w", err)
	}
	if ref(table, "GPSLatitudeRef") == "S" {
		latitude = -latitude
	}
	if ref(table, "GPSLongitudeRef") == "W" {
		longitude = -longitude
	}
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("gps: latitude %v out of range", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("gps: longitude %v out of range", longitude)
	}

	coord := &core.GpsCoordinate{
		Latitude:   latitude,
		Longitude:  longitude,
		GoogleMaps: fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", latitude, longitude),
	}
	coord.Altitude = altitude(table)
	return coord, nil
}

// degrees converts a (degrees, minutes, seconds) rational triple.
func degrees(v core.TagValue) (float64, error) {
	if v.Kind != core.KindRat || len(v.Rats) != 3 {
		return 0, fmt.Errorf("expected 3 rationals, got %s", v)
	}
	divisors := [3]float64{1, 60, 3600}
	var out float64
	for i, r := range v.Rats {
		if r.Den == 0 {
			return 0, fmt.Errorf("zero denominator in term %d", i)
		}
		out += float64(r.Num) / float64(r.Den) / divisors[i]
	}
	return out, nil
}

// altitude reads GPSAltitude in meters, negated when GPSAltitudeRef marks
// below sea level. Nil when absent or unusable.
func altitude(table core.TagTable) *float64 {
	v, ok := table["GPSAltitude"]
	if !ok || v.Kind != core.KindRat || len(v.Rats) == 0 || v.Rats[0].Den == 0 {
		return nil
	}
	m := float64(v.Rats[0].Num) / float64(v.Rats[0].Den)
	if r, ok := table["GPSAltitudeRef"]; ok && r.Kind == core.KindInt && len(r.Ints) > 0 && r.Ints[0] == 1 {
		m = -m
	}
	return &m
}

func ref(table core.TagTable, name string) string {
	if v, ok := table[name]; ok && v.Kind == core.KindStr {
		return strings.TrimSpace(v.Str)
	}
	return ""
}
