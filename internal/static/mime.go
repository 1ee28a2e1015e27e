package static

import "strings"

const defaultContentType = "application/octet-stream"

var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".ico":  "image/x-icon",
}

// ContentType maps a file extension (with leading dot) to its MIME type.
func ContentType(ext string) string {
	if ct, ok := contentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return defaultContentType
}
