// Package contenttype holds the fixed extension to MIME type table used to
// label every response.
package contenttype

import "strings"

// Charset is appended to every Content-Type header value.
const Charset = "utf-8"

// Type is a MIME type and whether its payload is text.
type Type struct {
	MIME string
	Text bool
}

// Default is used for every extension missing from the table.
var Default = Type{MIME: "text/plain", Text: true}

// table is built once and never mutated.
var table = map[string]Type{
	"html": {MIME: "text/html", Text: true},
	"css":  {MIME: "text/css", Text: true},
	"js":   {MIME: "application/javascript", Text: true},
	"json": {MIME: "application/json", Text: true},
	"mp4":  {MIME: "video/mp4"},
	"png":  {MIME: "image/png"},
	"webp": {MIME: "image/webp"},
	"jpeg": {MIME: "image/jpeg"},
	"jpg":  {MIME: "image/jpeg"},
	"gif":  {MIME: "image/gif"},
	"mp3":  {MIME: "audio/mp3"},
	"m4a":  {MIME: "audio/m4a"},
	"ico":  {MIME: "image/x-icon"},
	"svg":  {MIME: "image/svg+xml", Text: true},
}

// Lookup returns the type for ext. The match is case-insensitive and a
// leading dot is ignored.
func Lookup(ext string) Type {
	if t, ok := table[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return t
	}

	return Default
}

// Extension returns everything after the last '.' in path. A path without
// any '.' is returned whole, so "Makefile" is looked up as "Makefile" and
// falls through to Default.
func Extension(path string) string {
	return path[strings.LastIndexByte(path, '.')+1:]
}

// ForPath returns the type for the extension of path.
func ForPath(path string) Type {
	return Lookup(Extension(path))
}

// Header returns the Content-Type header value. When binaryCharset is false,
// types that are not text are sent without a charset parameter.
func (t Type) Header(binaryCharset bool) string {
	if !t.Text && !binaryCharset {
		return t.MIME
	}

	return t.MIME + "; charset=" + Charset
}

// Extensions returns the number of entries in the table.
func Extensions() int {
	return len(table)
}
