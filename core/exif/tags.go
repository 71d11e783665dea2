package exif

import "github.com/SyreCollins/img-metadata/core"

// TagDef declares a tag's canonical name and the value kind it carries.
type TagDef struct {
	Name string
	Kind core.TagKind
}

// Sub-IFD pointer tags in the 0th IFD.
const (
	exifIFDPointer uint16 = 0x8769
	gpsIFDPointer  uint16 = 0x8825
)

// tiffTags covers the 0th IFD and the Exif sub-IFD, which share a namespace.
var tiffTags = map[uint16]TagDef{
	0x010E: {"ImageDescription", core.KindStr},
	0x010F: {"Make", core.KindStr},
	0x0110: {"Model", core.KindStr},
	0x0112: {"Orientation", core.KindInt},
	0x0131: {"Software", core.KindStr},
	0x0132: {"DateTime", core.KindStr},
	0x013B: {"Artist", core.KindStr},
	0x8298: {"Copyright", core.KindStr},

	0x829A: {"ExposureTime", core.KindRat},
	0x829D: {"FNumber", core.KindRat},
	0x8822: {"ExposureProgram", core.KindInt},
	0x8827: {"ISOSpeedRatings", core.KindInt},
	0x9003: {"DateTimeOriginal", core.KindStr},
	0x9004: {"DateTimeDigitized", core.KindStr},
	0x9201: {"ShutterSpeedValue", core.KindRat},
	0x9202: {"ApertureValue", core.KindRat},
	0x9203: {"BrightnessValue", core.KindRat},
	0x9204: {"ExposureBiasValue", core.KindRat},
	0x9207: {"MeteringMode", core.KindInt},
	0x9209: {"Flash", core.KindInt},
	0x920A: {"FocalLength", core.KindRat},
	0x9286: {"UserComment", core.KindBytes},
	0xA001: {"ColorSpace", core.KindInt},
	0xA002: {"PixelXDimension", core.KindInt},
	0xA003: {"PixelYDimension", core.KindInt},
	0xA403: {"WhiteBalance", core.KindInt},
	0xA405: {"FocalLengthIn35mmFilm", core.KindInt},
	0xA434: {"LensModel", core.KindStr},
}

// gpsTags is the GPS sub-IFD namespace. IDs overlap with tiffTags and must
// never be looked up in the wrong table.
var gpsTags = map[uint16]TagDef{
	0x0000: {"GPSVersionID", core.KindBytes},
	0x0001: {"GPSLatitudeRef", core.KindStr},
	0x0002: {"GPSLatitude", core.KindRat},
	0x0003: {"GPSLongitudeRef", core.KindStr},
	0x0004: {"GPSLongitude", core.KindRat},
	0x0005: {"GPSAltitudeRef", core.KindInt},
	0x0006: {"GPSAltitude", core.KindRat},
	0x0007: {"GPSTimeStamp", core.KindRat},
	0x0010: {"GPSImgDirectionRef", core.KindStr},
	0x0011: {"GPSImgDirection", core.KindRat},
	0x001D: {"GPSDateStamp", core.KindStr},
}
