package foodgram

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpeg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ParseImageDataURL decodes "data:image/<type>;base64,<payload>".
func ParseImageDataURL(s string) (contentType, extension string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", "", nil, fmt.Errorf("image must be a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", nil, fmt.Errorf("image data url has no payload")
	}
	contentType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", nil, fmt.Errorf("image data url must be base64 encoded")
	}
	contentType = strings.ToLower(contentType)

	extension, ok = imageExtensions[contentType]
	if !ok {
		return "", "", nil, fmt.Errorf("unsupported image type %q", contentType)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", nil, fmt.Errorf("invalid base64 image payload")
	}
	if len(data) == 0 {
		return "", "", nil, fmt.Errorf("image is empty")
	}
	return contentType, extension, data, nil
}

// ImageDataURL is the inverse of ParseImageDataURL.
func ImageDataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
