package utils

import (
	"path"
	"strings"
)

const maxFilenameLen = 100

// SanitizeFilename keeps the base name of a client-supplied filename and
// replaces anything outside [A-Za-z0-9._-] so it is safe as a path segment.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if len(out) > maxFilenameLen {
		out = out[len(out)-maxFilenameLen:]
	}
	if out == "" || out == "_" {
		return "file"
	}
	return out
}
