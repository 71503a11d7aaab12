package capture

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data uri")

// DataURI encodes data as a base64 data URI of the given media type.
func DataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI decodes a base64 data URI and returns its media type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mediaType == "" {
		return "", nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrInvalidDataURI
	}
	return mediaType, data, nil
}

// IsImage reports whether uri is a decodable base64 image data URI.
func IsImage(uri string) bool {
	mediaType, _, err := ParseDataURI(uri)
	return err == nil && strings.HasPrefix(mediaType, "image/")
}
