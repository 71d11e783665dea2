// Package exif decodes a raw TIFF-structured EXIF block into a normalized
// tag table and derives signed-degree GPS coordinates from it.
package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/tiff"

	"github.com/SyreCollins/img-metadata/core"
)

var exifHeader = []byte("Exif\x00\x00")

// Decode parses a raw EXIF block into a tag table. The block may carry the
// APP1 "Exif\x00\x00" prefix or start directly at the TIFF header.
//
// Decoding is partial on failure: a malformed sub-IFD stops that IFD only,
// tags already decoded are kept, and the table is returned alongside the
// error so the caller can record it per category.
func Decode(raw []byte) (core.TagTable, error) {
	raw = bytes.TrimPrefix(raw, exifHeader)
	t, err := tiff.Decode(bytes.NewReader(raw))
	if err != nil {
		return core.TagTable{}, fmt.Errorf("exif: %w", err)
	}
	if len(t.Dirs) == 0 {
		return core.TagTable{}, fmt.Errorf("exif: no IFDs")
	}

	table := make(core.TagTable)
	var subErr error
	for _, tag := range t.Dirs[0].Tags {
		switch tag.Id {
		case exifIFDPointer:
			if err := decodeSubIFD(raw, t.Order, tag, tiffTags, table); err != nil && subErr == nil {
				subErr = err
			}
		case gpsIFDPointer:
			if err := decodeSubIFD(raw, t.Order, tag, gpsTags, table); err != nil && subErr == nil {
				subErr = err
			}
		default:
			addTag(table, tag, tiffTags)
		}
	}
	return table, subErr
}

// decodeSubIFD follows one sub-IFD pointer tag and decodes its directory
// into table under the dictionary dict.
func decodeSubIFD(raw []byte, order binary.ByteOrder, ptr *tiff.Tag, dict map[uint16]TagDef, table core.TagTable) error {
	offset, err := ptr.Int64(0)
	if err != nil {
		return fmt.Errorf("exif: bad sub-IFD pointer 0x%04x: %w", ptr.Id, err)
	}
	if offset < 0 || offset >= int64(len(raw)) {
		return fmt.Errorf("exif: sub-IFD offset %d out of bounds", offset)
	}
	r := bytes.NewReader(raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("exif: %w", err)
	}
	dir, _, err := tiff.DecodeDir(r, order)
	if err != nil {
		return fmt.Errorf("exif: sub-IFD 0x%04x: %w", ptr.Id, err)
	}
	for _, tag := range dir.Tags {
		addTag(table, tag, dict)
	}
	return nil
}

// addTag converts one directory entry to a TagValue and stores it under its
// canonical name. Unknown tag IDs are preserved, not dropped.
func addTag(table core.TagTable, tag *tiff.Tag, dict map[uint16]TagDef) {
	name := fmt.Sprintf("Tag0x%04x", tag.Id)
	if def, ok := dict[tag.Id]; ok {
		name = def.Name
	}
	table[name] = tagValue(tag)
}

// tagValue converts a decoded entry by its declared TIFF type. Byte strings
// become UTF-8 with invalid sequences replaced, never rejected. Rationals
// stay as (num, den) pairs for consumers to reduce.
func tagValue(tag *tiff.Tag) core.TagValue {
	n := int(tag.Count)
	switch tag.Format() {
	case tiff.IntVal:
		ints := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int64(i)
			if err != nil {
				break
			}
			ints = append(ints, v)
		}
		return core.TagValue{Kind: core.KindInt, Ints: ints}
	case tiff.RatVal:
		rats := make([]core.Rational, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				break
			}
			rats = append(rats, core.Rational{Num: num, Den: den})
		}
		return core.TagValue{Kind: core.KindRat, Rats: rats}
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return core.TagValue{Kind: core.KindBytes, Bytes: tag.Val}
		}
		s = strings.TrimRight(s, "\x00")
		return core.TagValue{Kind: core.KindStr, Str: strings.ToValidUTF8(s, "�")}
	case tiff.FloatVal:
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Float(i)
			if err != nil {
				break
			}
			parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
		}
		return core.TagValue{Kind: core.KindStr, Str: strings.Join(parts, " ")}
	default:
		return core.TagValue{Kind: core.KindBytes, Bytes: tag.Val}
	}
}
