package codec

import (
	"bytes"
	"image"

	gotiff "github.com/rwcarlsen/goexif/tiff"
	"golang.org/x/image/tiff"
)

// interColorProfile is the TIFF tag carrying an embedded ICC profile.
const interColorProfile = 0x8773

// decodeTIFF decodes pixels via x/image/tiff. The file itself is the
// TIFF-structured metadata block, so it is passed through whole; the ICC
// profile, if any, sits in the InterColorProfile tag of the 0th IFD.
func decodeTIFF(data []byte) (image.Image, []byte, []byte, error) {
	pixels, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, err
	}

	var iccBlock []byte
	if t, err := gotiff.Decode(bytes.NewReader(data)); err == nil && len(t.Dirs) > 0 {
		for _, tag := range t.Dirs[0].Tags {
			if tag.Id == interColorProfile {
				iccBlock = tag.Val
				break
			}
		}
	}
	return pixels, data, iccBlock, nil
}
