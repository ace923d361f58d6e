package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"passport.png":           "passport.png",
		"../../etc/passwd":       "passwd",
		`C:\Users\me\scan 1.pdf`: "scan_1.pdf",
		"..hidden":               "hidden",
		"":                       "file",
		"/":                      "file",
		"receipt (final).JPG":    "receipt__final_.JPG",
		"ünïcode.png":            "_n_code.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}

	long := strings.Repeat("a", 300) + ".pdf"
	got := SanitizeFilename(long)
	assert.Len(t, got, maxFilenameLen)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}

func TestReadAllLimitBytesReader(t *testing.T) {
	b, err := ReadAllLimit(bytes.NewReader([]byte("12345")), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(b))

	_, err = ReadAllLimit(bytes.NewReader([]byte("123456")), 5)
	assert.Error(t, err)
}
