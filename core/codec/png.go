package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image"
	"image/png"
	"io"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// decodePNG decodes pixels via image/png and harvests the eXIf chunk and
// the zlib-compressed iCCP profile.
func decodePNG(data []byte) (image.Image, []byte, []byte, error) {
	pixels, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, err
	}

	var exifBlock, iccBlock []byte
	for _, c := range pngChunks(data) {
		switch c.typ {
		case "eXIf":
			if exifBlock == nil {
				exifBlock = c.data
			}
		case "iCCP":
			// Format: name, NUL, compression method byte, zlib stream.
			null := bytes.IndexByte(c.data, 0)
			if null < 0 || null+2 >= len(c.data) {
				continue
			}
			zr, err := zlib.NewReader(bytes.NewReader(c.data[null+2:]))
			if err != nil {
				continue
			}
			if raw, err := io.ReadAll(zr); err == nil && iccBlock == nil {
				iccBlock = raw
			}
			zr.Close()
		}
	}
	return pixels, exifBlock, iccBlock, nil
}

type pngChunk struct {
	typ  string
	data []byte
}

// pngChunks walks the chunk list up to IEND. Truncation stops the walk.
func pngChunks(data []byte) []pngChunk {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil
	}
	var chunks []pngChunk
	i := len(pngSignature)
	for i+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[i : i+4]))
		typ := string(data[i+4 : i+8])
		i += 8
		if length < 0 || i+length+4 > len(data) {
			break
		}
		chunks = append(chunks, pngChunk{typ: typ, data: data[i : i+length]})
		i += length + 4 // skip CRC
		if typ == "IEND" {
			break
		}
	}
	return chunks
}
