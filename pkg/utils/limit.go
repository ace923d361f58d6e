package utils

import (
	"errors"
	"io"
)

var ErrTooLarge = errors.New("content exceeds size limit")

// ReadAllLimit reads r fully but refuses anything longer than max bytes.
// At most max+1 bytes are consumed.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	if max < 0 {
		max = 0
	}
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrTooLarge
	}
	return b, nil
}
