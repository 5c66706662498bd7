package file

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".svg": {}, ".avif": {},
}

func isImageFilename(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// safeName strips any path components an uploader may have smuggled in.
func safeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// detectContentType prefers the client header, then the extension, then
// content sniffing.
func detectContentType(filename, header string, head []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	if len(head) > 0 {
		return http.DetectContentType(head)
	}
	return "application/octet-stream"
}
