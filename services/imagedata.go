package services

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

var dataURIPrefixRule = regexp.MustCompile(`^data:image/\w+;base64,`)

// StripDataURI removes a leading data-URI header if present, leaving bare
// base64. Calling it on already-bare base64 is a no-op.
func StripDataURI(image string) string {
	return dataURIPrefixRule.ReplaceAllString(image, "")
}

// WrapJPEGDataURI turns bare base64 into the displayable form the clients
// expect. Everything coming back from generation is rewrapped as jpeg.
func WrapJPEGDataURI(b64 string) string {
	return "data:image/jpeg;base64," + b64
}

func EncodeJPEGDataURI(raw []byte) string {
	return WrapJPEGDataURI(base64.StdEncoding.EncodeToString(raw))
}

func EncodePNGDataURI(raw []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

// DecodeImagePayload strips any data-URI header and decodes the base64 body
// into raw bytes for an inline request part.
func DecodeImagePayload(image string) ([]byte, error) {
	b64 := strings.TrimSpace(StripDataURI(image))
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %v", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return raw, nil
}

func IsDataURI(image string) bool {
	return strings.HasPrefix(image, "data:")
}
