package ingest

import (
	"fmt"
	"net/http"
	"strings"
)

// sniffLen is how many leading bytes http.DetectContentType inspects.
const sniffLen = 512

// allowedContentTypes lists the detected types accepted per format.
// CSV is plain text; XLSX is a zip container.
var allowedContentTypes = map[string]map[string]bool{
	FormatCSV: {
		"text/plain":               true,
		"text/csv":                 true,
		"application/csv":          true,
		"application/octet-stream": true,
	},
	FormatXLSX: {
		"application/zip":          true,
		"application/octet-stream": true,
	},
}

// ValidateContent checks that the leading bytes of an upload are consistent
// with the format its name claims.
func ValidateContent(filename string, data []byte) (string, error) {
	format := FormatOf(filename)
	allowed, ok := allowedContentTypes[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	detected := http.DetectContentType(head)
	detected = strings.ToLower(strings.TrimSpace(strings.Split(detected, ";")[0]))

	if !allowed[detected] {
		return format, fmt.Errorf("detected content type %q is not consistent with a %s file", detected, format)
	}
	return format, nil
}
