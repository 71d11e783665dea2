// Package icc extracts the human-readable description from a raw ICC
// profile blob.
package icc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ErrNoDescription means the profile parsed but carries no usable
// description text. It is distinct from a profile that fails to parse.
var ErrNoDescription = errors.New("icc: profile has no description")

const (
	headerSize = 128
	descTag    = "desc"
)

// Description parses the profile header and tag table, locates the "desc"
// tag and decodes its payload, either the legacy textDescription encoding
// or multiLocalizedUnicode. The returned string is trimmed of trailing
// whitespace and NULs.
func Description(profile []byte) (string, error) {
	if len(profile) < headerSize+4 {
		return "", fmt.Errorf("icc: profile truncated (%d bytes)", len(profile))
	}
	if string(profile[36:40]) != "acsp" {
		return "", fmt.Errorf("icc: missing profile signature")
	}

	tagCount := binary.BigEndian.Uint32(profile[headerSize : headerSize+4])
	if tagCount > 1024 {
		return "", fmt.Errorf("icc: implausible tag count %d", tagCount)
	}
	for i := uint32(0); i < tagCount; i++ {
		entry := headerSize + 4 + int(i)*12
		if entry+12 > len(profile) {
			return "", fmt.Errorf("icc: tag table truncated")
		}
		sig := string(profile[entry : entry+4])
		offset := binary.BigEndian.Uint32(profile[entry+4 : entry+8])
		size := binary.BigEndian.Uint32(profile[entry+8 : entry+12])
		if sig != descTag {
			continue
		}
		if int(offset)+int(size) > len(profile) || size < 8 {
			return "", fmt.Errorf("icc: desc tag out of bounds")
		}
		return decodeDescription(profile[offset : offset+size])
	}
	return "", ErrNoDescription
}

// decodeDescription dispatches on the payload's type signature.
func decodeDescription(payload []byte) (string, error) {
	switch string(payload[:4]) {
	case "desc":
		return textDescription(payload)
	case "mluc":
		return multiLocalizedUnicode(payload)
	}
	return "", fmt.Errorf("icc: unsupported description encoding %q", payload[:4])
}

// textDescription is the legacy encoding: type sig, reserved, ASCII count,
// then the NUL-terminated ASCII string.
func textDescription(payload []byte) (string, error) {
	if len(payload) < 12 {
		return "", fmt.Errorf("icc: desc payload truncated")
	}
	count := binary.BigEndian.Uint32(payload[8:12])
	if count == 0 {
		return "", ErrNoDescription
	}
	if 12+int(count) > len(payload) {
		return "", fmt.Errorf("icc: desc string truncated")
	}
	s := trim(string(payload[12 : 12+count]))
	if s == "" {
		return "", ErrNoDescription
	}
	return s, nil
}

// multiLocalizedUnicode returns the first record's UTF-16BE string.
func multiLocalizedUnicode(payload []byte) (string, error) {
	if len(payload) < 28 {
		return "", fmt.Errorf("icc: mluc payload truncated")
	}
	count := binary.BigEndian.Uint32(payload[8:12])
	if count == 0 {
		return "", ErrNoDescription
	}
	// First record: language (2), country (2), length (4), offset (4),
	// offset relative to the start of the mluc payload.
	length := binary.BigEndian.Uint32(payload[20:24])
	offset := binary.BigEndian.Uint32(payload[24:28])
	if int(offset)+int(length) > len(payload) {
		return "", fmt.Errorf("icc: mluc record out of bounds")
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := dec.Bytes(payload[offset : offset+length])
	if err != nil {
		return "", fmt.Errorf("icc: mluc decode: %w", err)
	}
	s := trim(string(decoded))
	if s == "" {
		return "", ErrNoDescription
	}
	return s, nil
}

func trim(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
