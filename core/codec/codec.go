// Package codec decodes the supported image containers into a pixel grid
// and harvests the raw EXIF and ICC segments they carry. It is the only
// package that touches container bytes; everything downstream works on the
// decoded Image.
package codec

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/SyreCollins/img-metadata/core"
)

// ErrUndecodable wraps any pixel-decode failure. It is fatal for the whole
// extraction call; metadata-segment harvesting never produces it.
var ErrUndecodable = errors.New("undecodable image data")

// Image is a decoded container: the pixel grid plus the raw metadata blocks
// still attached to the file. It is read-only for the rest of the pipeline.
type Image struct {
	Pixels   image.Image
	Format   core.FormatID
	Mode     string
	Width    int
	Height   int
	FileSize int64
	Filename string
	Exif     []byte // raw TIFF-structured block, nil if none
	Icc      []byte // raw ICC profile, nil if none
}

// Decode reads one image from r and decodes it. The format is identified by
// magic bytes, falling back to the extension of name.
func Decode(r io.Reader, name string) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return decode(data, name)
}

// DecodeFile decodes the image at path.
func DecodeFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data, filepath.Base(path))
}

func decode(data []byte, name string) (*Image, error) {
	id := core.SniffFormat(data)
	if id == core.FmtUnknown {
		var err error
		if id, err = core.FormatFromName(name); err != nil {
			return nil, fmt.Errorf("%w: unrecognised container", ErrUndecodable)
		}
	}

	var (
		pixels    image.Image
		exif, icc []byte
		err       error
	)
	switch id {
	case core.FmtJPEG:
		pixels, exif, icc, err = decodeJPEG(data)
	case core.FmtPNG:
		pixels, exif, icc, err = decodePNG(data)
	case core.FmtWebP:
		pixels, exif, icc, err = decodeWebP(data)
	case core.FmtTIFF:
		pixels, exif, icc, err = decodeTIFF(data)
	default:
		return nil, fmt.Errorf("%w: unrecognised container", ErrUndecodable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	b := pixels.Bounds()
	return &Image{
		Pixels:   pixels,
		Format:   id,
		Mode:     modeOf(pixels),
		Width:    b.Dx(),
		Height:   b.Dy(),
		FileSize: int64(len(data)),
		Filename: name,
		Exif:     exif,
		Icc:      icc,
	}, nil
}

// modeOf derives the channel-layout name from the decoded pixel type.
func modeOf(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "gray"
	case *image.Gray16:
		return "gray16"
	case *image.RGBA:
		return "rgba"
	case *image.RGBA64:
		return "rgba64"
	case *image.NRGBA:
		return "nrgba"
	case *image.NRGBA64:
		return "nrgba64"
	case *image.CMYK:
		return "cmyk"
	case *image.YCbCr:
		return "ycbcr"
	case *image.Paletted:
		return "paletted"
	default:
		return "rgb"
	}
}
