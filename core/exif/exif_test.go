package exif

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyreCollins/img-metadata/core"
)

// ─── synthetic TIFF builder ──────────────────────────────────────────────────

type tagSpec struct {
	id    uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiSpec(id uint16, s string) tagSpec {
	return tagSpec{id: id, typ: 2, count: uint32(len(s) + 1), data: append([]byte(s), 0)}
}

func shortSpec(id uint16, v uint16) tagSpec {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, v)
	return tagSpec{id: id, typ: 3, count: 1, data: data}
}

func longSpec(id uint16, v uint32) tagSpec {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, v)
	return tagSpec{id: id, typ: 4, count: 1, data: data}
}

func ratSpec(id uint16, pairs ...[2]uint32) tagSpec {
	var data bytes.Buffer
	for _, p := range pairs {
		binary.Write(&data, binary.LittleEndian, p[0])
		binary.Write(&data, binary.LittleEndian, p[1])
	}
	return tagSpec{id: id, typ: 5, count: uint32(len(pairs)), data: data.Bytes()}
}

// encodeIFD renders one directory at absolute offset base, out-of-line
// values appended after the entry list.
func encodeIFD(specs []tagSpec, base int) []byte {
	ifdSize := 2 + 12*len(specs) + 4
	var entries, vals bytes.Buffer
	binary.Write(&entries, binary.LittleEndian, uint16(len(specs)))
	for _, s := range specs {
		binary.Write(&entries, binary.LittleEndian, s.id)
		binary.Write(&entries, binary.LittleEndian, s.typ)
		binary.Write(&entries, binary.LittleEndian, s.count)
		if len(s.data) <= 4 {
			padded := make([]byte, 4)
			copy(padded, s.data)
			entries.Write(padded)
		} else {
			binary.Write(&entries, binary.LittleEndian, uint32(base+ifdSize+vals.Len()))
			vals.Write(s.data)
			if vals.Len()%2 == 1 {
				vals.WriteByte(0)
			}
		}
	}
	binary.Write(&entries, binary.LittleEndian, uint32(0)) // next IFD
	return append(entries.Bytes(), vals.Bytes()...)
}

// buildTIFF assembles a little-endian TIFF block: the 0th IFD with prim,
// followed by optional Exif and GPS sub-IFDs wired through pointer tags.
func buildTIFF(prim, exifSub, gps []tagSpec) []byte {
	n0 := len(prim)
	if exifSub != nil {
		n0++
	}
	if gps != nil {
		n0++
	}
	primVals := 0
	for _, s := range prim {
		if len(s.data) > 4 {
			primVals += len(s.data) + len(s.data)%2
		}
	}
	ifd0Len := 2 + 12*n0 + 4 + primVals

	specs := append([]tagSpec{}, prim...)
	next := 8 + ifd0Len
	var exifBlock, gpsBlock []byte
	if exifSub != nil {
		exifBlock = encodeIFD(exifSub, next)
		specs = append(specs, longSpec(exifIFDPointer, uint32(next)))
		next += len(exifBlock)
	}
	if gps != nil {
		gpsBlock = encodeIFD(gps, next)
		specs = append(specs, longSpec(gpsIFDPointer, uint32(next)))
	}

	var out bytes.Buffer
	out.WriteString("II")
	out.Write([]byte{0x2A, 0x00, 0x08, 0x00, 0x00, 0x00})
	out.Write(encodeIFD(specs, 8))
	out.Write(exifBlock)
	out.Write(gpsBlock)
	return out.Bytes()
}

// ─── decoder ─────────────────────────────────────────────────────────────────

func TestDecodeTagTable(t *testing.T) {
	raw := buildTIFF(
		[]tagSpec{
			asciiSpec(0x010F, "Canon"),
			asciiSpec(0x0110, "Canon EOS R5"),
			shortSpec(0x0112, 6),
		},
		[]tagSpec{
			shortSpec(0x8827, 400),
			ratSpec(0x829A, [2]uint32{1, 250}),
			asciiSpec(0xA434, "RF 50mm F1.8"),
		},
		nil,
	)

	table, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, "Canon", table["Make"].Str)
	assert.Equal(t, "Canon EOS R5", table["Model"].Str)
	assert.Equal(t, []int64{6}, table["Orientation"].Ints)
	assert.Equal(t, []int64{400}, table["ISOSpeedRatings"].Ints)
	assert.Equal(t, "RF 50mm F1.8", table["LensModel"].Str)

	exposure := table["ExposureTime"]
	require.Equal(t, core.KindRat, exposure.Kind)
	require.Len(t, exposure.Rats, 1)
	assert.Equal(t, core.Rational{Num: 1, Den: 250}, exposure.Rats[0])
}

func TestDecodeAcceptsExifPrefix(t *testing.T) {
	raw := buildTIFF([]tagSpec{asciiSpec(0x010F, "Nikon")}, nil, nil)
	prefixed := append([]byte("Exif\x00\x00"), raw...)

	table, err := Decode(prefixed)
	require.NoError(t, err)
	assert.Equal(t, "Nikon", table["Make"].Str)
}

func TestDecodeUnknownTagPreserved(t *testing.T) {
	raw := buildTIFF([]tagSpec{asciiSpec(0xC615, "proprietary")}, nil, nil)

	table, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "proprietary", table["Tag0xc615"].Str)
}

func TestDecodeTruncated(t *testing.T) {
	raw := buildTIFF([]tagSpec{asciiSpec(0x010F, "Canon")}, nil, nil)

	_, err := Decode(raw[:9])
	assert.Error(t, err)
}

func TestDecodeBadSubIFDPointerKeepsDecodedTags(t *testing.T) {
	raw := buildTIFF([]tagSpec{
		asciiSpec(0x010F, "Canon"),
		longSpec(gpsIFDPointer, 0xFFFFFF), // far out of bounds
	}, nil, nil)

	table, err := Decode(raw)
	assert.Error(t, err)
	assert.Equal(t, "Canon", table["Make"].Str)
}

func TestDecodeGPSEndToEnd(t *testing.T) {
	raw := buildTIFF(
		[]tagSpec{asciiSpec(0x010F, "Apple")},
		nil,
		[]tagSpec{
			asciiSpec(0x0001, "N"),
			ratSpec(0x0002, [2]uint32{40, 1}, [2]uint32{26, 1}, [2]uint32{46, 1}),
			asciiSpec(0x0003, "W"),
			ratSpec(0x0004, [2]uint32{79, 1}, [2]uint32{56, 1}, [2]uint32{55, 1}),
		},
	)

	table, err := Decode(raw)
	require.NoError(t, err)

	coord, err := GPS(table)
	require.NoError(t, err)
	require.NotNil(t, coord)
	assert.InDelta(t, 40.4461, coord.Latitude, 0.0001)
	assert.InDelta(t, -79.9486, coord.Longitude, 0.0001)
	assert.Contains(t, coord.GoogleMaps, "https://www.google.com/maps/search/?api=1&query=")
}
