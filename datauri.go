package qianbao

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// EncodeDataURI reads a whole file and encodes it as a base64 data URI.
//
// The media type is sniffed from the content. Neither size nor type is checked.
func EncodeDataURI(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("cannot read image: %w", err)
	}
	mediatype, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		mediatype = "application/octet-stream"
	}
	return "data:" + mediatype + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
