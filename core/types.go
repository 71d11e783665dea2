// Package core defines the shared data model and format registry for
// img-metadata.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedFormat is returned by the input gate for files outside the
// accepted set. It is checked before any decoding starts.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// TagKind discriminates the value held by a TagValue.
type TagKind int

const (
	KindInt TagKind = iota
	KindRat
	KindStr
	KindBytes
)

// Rational is an unreduced EXIF rational. Consumers reduce as needed.
type Rational struct {
	Num int64
	Den int64
}

// TagValue is a tagged variant: exactly one of Ints, Rats, Str or Bytes is
// populated, according to Kind. Multi-value tags keep their values in order.
type TagValue struct {
	Kind  TagKind
	Ints  []int64
	Rats  []Rational
	Str   string
	Bytes []byte
}

// String renders the value for display.
func (v TagValue) String() string {
	switch v.Kind {
	case KindInt:
		parts := make([]string, len(v.Ints))
		for i, n := range v.Ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, " ")
	case KindRat:
		parts := make([]string, len(v.Rats))
		for i, r := range v.Rats {
			parts[i] = fmt.Sprintf("%d/%d", r.Num, r.Den)
		}
		return strings.Join(parts, " ")
	case KindStr:
		return v.Str
	default:
		if len(v.Bytes) > 64 {
			return fmt.Sprintf("(%d bytes)", len(v.Bytes))
		}
		return fmt.Sprintf("0x%x", v.Bytes)
	}
}

// TagTable maps canonical tag names to decoded values. Unknown tag IDs are
// preserved under a "Tag0x%04x" key.
type TagTable map[string]TagValue

// Render returns the table with every value rendered as a string.
func (t TagTable) Render() map[string]string {
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[k] = v.String()
	}
	return out
}

// GpsCoordinate holds signed decimal degrees derived from the GPS IFD.
type GpsCoordinate struct {
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Altitude   *float64 `json:"altitude"`
	GoogleMaps string   `json:"google_maps"`
}

// HashSet holds the four perceptual hashes, each a 16-char lowercase hex
// rendering of a 64-bit vector. They are independent fingerprints; only
// same-algorithm hashes are comparable.
type HashSet struct {
	Average    string `json:"average"`
	Difference string `json:"difference"`
	Wavelet    string `json:"wavelet"`
	Perceptual string `json:"perceptual"`
}

// ColorStats holds per-channel statistics and the 768-slot histogram
// (256 bins per channel, R then G then B).
type ColorStats struct {
	Mean      [3]float64 `json:"mean"`
	Median    [3]float64 `json:"median"`
	StdDev    [3]float64 `json:"stddev"`
	RMS       [3]float64 `json:"rms"`
	Histogram [768]int64 `json:"histogram"`
}

// DominantColor is one palette entry from the downsampled color count.
type DominantColor struct {
	Hex   string `json:"hex"`
	R     uint8  `json:"r"`
	G     uint8  `json:"g"`
	B     uint8  `json:"b"`
	Count int    `json:"count"`
}

// ExifSummary exposes the well-known camera fields as rendered strings.
// Nil means the tag was not present in the source.
type ExifSummary struct {
	CameraMake      *string `json:"camera_make"`
	CameraModel     *string `json:"camera_model"`
	Software        *string `json:"software"`
	Orientation     *string `json:"orientation"`
	ISO             *string `json:"iso"`
	ExposureTime    *string `json:"exposure_time"`
	Aperture        *string `json:"aperture"`
	FocalLength     *string `json:"focal_length"`
	DateTaken       *string `json:"date_taken"`
	ShutterSpeed    *string `json:"shutter_speed"`
	Brightness      *string `json:"brightness"`
	WhiteBalance    *string `json:"white_balance"`
	MeteringMode    *string `json:"metering_mode"`
	LensModel       *string `json:"lens_model"`
	ExposureProgram *string `json:"exposure_program"`
	Flash           *string `json:"flash"`
}

// Failures records per-category extraction errors. Nil means the category
// succeeded or was absent from the source; a non-nil entry carries the error
// string. One category failing never blocks another.
type Failures struct {
	Exif  *string `json:"exif"`
	Gps   *string `json:"gps"`
	Icc   *string `json:"icc"`
	Hash  *string `json:"hash"`
	Color *string `json:"color"`
}

// Record is the extraction output for one image. Optional fields are
// pointers serialized without omitempty, so absent data shows up as an
// explicit JSON null rather than a missing key.
type Record struct {
	Filename       string            `json:"filename"`
	Format         string            `json:"format"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	Mode           string            `json:"mode"`
	FileSizeBytes  int64             `json:"file_size_bytes"`
	AspectRatio    string            `json:"aspect_ratio"`
	Megapixels     float64           `json:"megapixels"`
	IccProfile     *string           `json:"icc_profile"`
	Exif           *ExifSummary      `json:"exif"`
	ExifTags       map[string]string `json:"exif_tags"`
	Gps            *GpsCoordinate    `json:"gps"`
	Hashes         *HashSet          `json:"hashes"`
	ColorStats     *ColorStats       `json:"color_stats"`
	DominantColors []DominantColor   `json:"dominant_colors"`
	Errors         Failures          `json:"errors"`
}
