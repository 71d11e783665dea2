package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want FormatID
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, FmtJPEG},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, FmtPNG},
		{"webp", []byte("RIFF\x10\x00\x00\x00WEBPVP8 "), FmtWebP},
		{"tiff little-endian", []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}, FmtTIFF},
		{"tiff big-endian", []byte{0x4D, 0x4D, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08}, FmtTIFF},
		{"riff but not webp", []byte("RIFF\x10\x00\x00\x00WAVEfmt "), FmtUnknown},
		{"too short", []byte{0xFF, 0xD8}, FmtUnknown},
		{"garbage", []byte("not an image at all"), FmtUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffFormat(tt.data))
		})
	}
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name string
		want FormatID
		ok   bool
	}{
		{"photo.jpg", FmtJPEG, true},
		{"photo.JPEG", FmtJPEG, true},
		{"chart.png", FmtPNG, true},
		{"anim.webp", FmtWebP, true},
		{"scan.tif", FmtTIFF, true},
		{"scan.tiff", FmtTIFF, true},
		{"doc.gif", FmtUnknown, false},
		{"doc.pdf", FmtUnknown, false},
		{"noext", FmtUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := FormatFromName(tt.name)
			assert.Equal(t, tt.want, id)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
			}
		})
	}
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "JPEG", FormatName(FmtJPEG))
	assert.Equal(t, "WebP", FormatName(FmtWebP))
	assert.Equal(t, "Unknown", FormatName(FmtUnknown))
}
