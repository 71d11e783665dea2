package codec

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"sort"
)

var (
	exifPrefix = []byte("Exif\x00\x00")
	iccPrefix  = []byte("ICC_PROFILE\x00")
)

// decodeJPEG decodes pixels via image/jpeg and walks the segment list for
// the APP1 EXIF block and the APP2 ICC profile chunks. Harvesting is
// best-effort: a torn segment list yields nil metadata, never an error.
func decodeJPEG(data []byte) (image.Image, []byte, []byte, error) {
	pixels, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, err
	}

	var exifBlock []byte
	var iccChunks []iccChunk
	for _, seg := range jpegSegments(data) {
		switch {
		case seg.marker == 0xE1 && bytes.HasPrefix(seg.data, exifPrefix):
			if exifBlock == nil {
				exifBlock = seg.data[len(exifPrefix):]
			}
		case seg.marker == 0xE2 && bytes.HasPrefix(seg.data, iccPrefix):
			// After the prefix: 1-byte sequence number, 1-byte chunk total.
			rest := seg.data[len(iccPrefix):]
			if len(rest) > 2 {
				iccChunks = append(iccChunks, iccChunk{seq: rest[0], data: rest[2:]})
			}
		}
	}
	return pixels, exifBlock, assembleICC(iccChunks), nil
}

type iccChunk struct {
	seq  byte
	data []byte
}

// assembleICC reorders the APP2 chunk sequence and concatenates the payloads.
func assembleICC(chunks []iccChunk) []byte {
	if len(chunks) == 0 {
		return nil
	}
	sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].seq < chunks[j].seq })
	var buf bytes.Buffer
	for _, c := range chunks {
		buf.Write(c.data)
	}
	return buf.Bytes()
}

type jpegSegment struct {
	marker byte
	data   []byte
}

// jpegSegments walks the marker segments up to SOS. A malformed list stops
// the walk; segments seen so far are returned.
func jpegSegments(data []byte) []jpegSegment {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil
	}
	var segs []jpegSegment
	i := 2
	for i+1 < len(data) {
		if data[i] != 0xFF {
			break
		}
		marker := data[i+1]
		i += 2
		if marker == 0xD8 || marker == 0xD9 || (marker >= 0xD0 && marker <= 0xD7) {
			continue // no payload
		}
		if i+2 > len(data) {
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[i:i+2])) - 2
		i += 2
		if segLen < 0 || i+segLen > len(data) {
			break
		}
		segs = append(segs, jpegSegment{marker: marker, data: data[i : i+segLen]})
		i += segLen
		if marker == 0xDA { // start of scan
			break
		}
	}
	return segs
}
