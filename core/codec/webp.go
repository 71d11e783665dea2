package codec

import (
	"bytes"
	"encoding/binary"
	"image"

	"golang.org/x/image/webp"
)

// decodeWebP decodes pixels via x/image/webp and walks the RIFF chunks for
// the EXIF and ICCP payloads.
func decodeWebP(data []byte) (image.Image, []byte, []byte, error) {
	pixels, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, err
	}

	var exifBlock, iccBlock []byte
	offset := 12 // skip RIFF header
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8
		if chunkSize < 0 || offset+chunkSize > len(data) {
			break
		}
		chunkData := data[offset : offset+chunkSize]

		switch chunkID {
		case "EXIF":
			if exifBlock == nil {
				// Some encoders keep the APP1 prefix inside the chunk.
				exifBlock = bytes.TrimPrefix(chunkData, exifPrefix)
			}
		case "ICCP":
			if iccBlock == nil {
				iccBlock = chunkData
			}
		}

		offset += chunkSize
		if chunkSize%2 != 0 {
			offset++ // padding
		}
	}
	return pixels, exifBlock, iccBlock, nil
}
