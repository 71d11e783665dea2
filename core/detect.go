package core

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// FormatID enumerates every recognised container format.
type FormatID string

const (
	FmtJPEG FormatID = "jpeg"
	FmtPNG  FormatID = "png"
	FmtWebP FormatID = "webp"
	FmtTIFF FormatID = "tiff"

	FmtUnknown FormatID = "unknown"
)

// extMap maps lowercase extensions to format IDs.
var extMap = map[string]FormatID{
	".jpg":  FmtJPEG,
	".jpeg": FmtJPEG,
	".png":  FmtPNG,
	".webp": FmtWebP,
	".tiff": FmtTIFF,
	".tif":  FmtTIFF,
}

// formatNames maps format IDs to human-readable names.
var formatNames = map[FormatID]string{
	FmtJPEG: "JPEG",
	FmtPNG:  "PNG",
	FmtWebP: "WebP",
	FmtTIFF: "TIFF",
}

// FormatName returns the human-readable name for a format.
func FormatName(id FormatID) string {
	if name, ok := formatNames[id]; ok {
		return name
	}
	return "Unknown"
}

// FormatFromName is the input gate: it maps a filename's extension to a
// FormatID, or returns ErrUnsupportedFormat for anything outside the
// accepted set. It runs before any decoding starts.
func FormatFromName(name string) (FormatID, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if id, ok := extMap[ext]; ok {
		return id, nil
	}
	return FmtUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// SniffFormat identifies a format by magic bytes, returning FmtUnknown when
// the prefix matches none of the accepted containers.
func SniffFormat(b []byte) FormatID {
	if len(b) < 4 {
		return FmtUnknown
	}
	switch {
	// JPEG: FF D8 FF
	case b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return FmtJPEG
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(b, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return FmtPNG
	// WebP: RIFF????WEBP
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return FmtWebP
	// TIFF: 49 49 2A 00 (little-endian) or 4D 4D 00 2A (big-endian)
	case bytes.HasPrefix(b, []byte{0x49, 0x49, 0x2A, 0x00}) ||
		bytes.HasPrefix(b, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return FmtTIFF
	}
	return FmtUnknown
}
