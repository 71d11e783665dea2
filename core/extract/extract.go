// Package extract assembles the per-analyzer results for one decoded image
// into a single Record. Failures are isolated per category: no analyzer's
// error stops another from running or keeps a successful field out of the
// output.
package extract

import (
	"errors"
	"image"
	"io"
	"strings"

	"github.com/SyreCollins/img-metadata/core"
	"github.com/SyreCollins/img-metadata/core/codec"
	"github.com/SyreCollins/img-metadata/core/colors"
	"github.com/SyreCollins/img-metadata/core/exif"
	"github.com/SyreCollins/img-metadata/core/icc"
	"github.com/SyreCollins/img-metadata/core/phash"
)

// iccUnparsable is the record value for a profile that is present but whose
// description cannot be decoded. Absent profiles stay null instead.
const iccUnparsable = "Embedded ICC profile found, could not parse description"

// iccEmptyDesc marks a profile that parsed but carries no description text.
const iccEmptyDesc = "Embedded ICC profile found, no description"

// Options tunes the assembler.
type Options struct {
	// TopK bounds the dominant-color palette; 0 means the default.
	TopK int
}

// Extract runs every analyzer against one decoded image and merges the
// results. It never fails as a whole: geometry, format and file size always
// populate, and each analyzer error lands in the record's Errors field.
func Extract(src *codec.Image, opts Options) *core.Record {
	rec := &core.Record{
		Filename:      src.Filename,
		Format:        core.FormatName(src.Format),
		Width:         src.Width,
		Height:        src.Height,
		Mode:          src.Mode,
		FileSizeBytes: src.FileSize,
		AspectRatio:   colors.AspectRatio(src.Width, src.Height),
		Megapixels:    colors.Megapixels(src.Width, src.Height),
		ExifTags:      map[string]string{},
	}

	extractExif(src.Exif, rec)
	extractIcc(src.Icc, rec)

	if hashes, err := phash.Compute(src.Pixels); err != nil {
		rec.Errors.Hash = strp(err)
	} else {
		rec.Hashes = hashes
	}

	extractColors(src.Pixels, opts.TopK, rec)
	return rec
}

// ExtractFile runs the input gate, the codec and the assembler for one file
// on disk.
func ExtractFile(path string, opts Options) (*core.Record, error) {
	if _, err := core.FormatFromName(path); err != nil {
		return nil, err
	}
	src, err := codec.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(src, opts), nil
}

// ExtractReader does the same for an in-memory upload named name.
func ExtractReader(r io.Reader, name string, opts Options) (*core.Record, error) {
	if _, err := core.FormatFromName(name); err != nil {
		return nil, err
	}
	src, err := codec.Decode(r, name)
	if err != nil {
		return nil, err
	}
	return Extract(src, opts), nil
}

func extractExif(raw []byte, rec *core.Record) {
	if raw == nil {
		return // no EXIF block is not an error
	}
	table, err := exif.Decode(raw)
	if err != nil {
		rec.Errors.Exif = strp(err)
	}
	if len(table) == 0 {
		return
	}
	rec.ExifTags = table.Render()
	rec.Exif = summarize(table)

	gps, err := exif.GPS(table)
	if err != nil {
		rec.Errors.Gps = strp(err)
		return
	}
	rec.Gps = gps
}

func extractIcc(raw []byte, rec *core.Record) {
	if raw == nil {
		return // icc_profile stays null: no profile embedded
	}
	desc, err := icc.Description(raw)
	switch {
	case err == nil:
		rec.IccProfile = &desc
	case errors.Is(err, icc.ErrNoDescription):
		s := iccEmptyDesc
		rec.IccProfile = &s
	default:
		s := iccUnparsable
		rec.IccProfile = &s
		rec.Errors.Icc = strp(err)
	}
}

func extractColors(px image.Image, topK int, rec *core.Record) {
	var errs []string
	if stats, err := colors.Stats(px); err != nil {
		errs = append(errs, err.Error())
	} else {
		rec.ColorStats = stats
	}
	if palette, err := colors.Dominant(px, topK); err != nil {
		errs = append(errs, err.Error())
	} else {
		rec.DominantColors = palette
	}
	if len(errs) > 0 {
		joined := strings.Join(errs, "; ")
		rec.Errors.Color = &joined
	}
}

// summarize pulls the well-known camera fields out of the full table.
func summarize(table core.TagTable) *core.ExifSummary {
	get := func(name string) *string {
		if v, ok := table[name]; ok {
			s := v.String()
			return &s
		}
		return nil
	}
	return &core.ExifSummary{
		CameraMake:      get("Make"),
		CameraModel:     get("Model"),
		Software:        get("Software"),
		Orientation:     get("Orientation"),
		ISO:             get("ISOSpeedRatings"),
		ExposureTime:    get("ExposureTime"),
		Aperture:        get("FNumber"),
		FocalLength:     get("FocalLength"),
		DateTaken:       get("DateTimeOriginal"),
		ShutterSpeed:    get("ShutterSpeedValue"),
		Brightness:      get("BrightnessValue"),
		WhiteBalance:    get("WhiteBalance"),
		MeteringMode:    get("MeteringMode"),
		LensModel:       get("LensModel"),
		ExposureProgram: get("ExposureProgram"),
		Flash:           get("Flash"),
	}
}

func strp(err error) *string {
	s := err.Error()
	return &s
}
