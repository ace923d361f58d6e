package errno

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusOK, "Success"},
		{"validation", Validation("Invalid amount"), http.StatusBadRequest, "Invalid amount"},
		{"wrapped", fmt.Errorf("create: %w", ErrNotFound), http.StatusNotFound, "Not found"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"file type", ErrFileType, http.StatusBadRequest, "only images and PDFs allowed"},
		{"unknown", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Decode(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestIsMatchesCodeNotMessage(t *testing.T) {
	assert.ErrorIs(t, Validation("Missing fields: name"), ErrValidation)
	assert.ErrorIs(t, ErrFileTooLarge, ErrValidation)
	assert.NotErrorIs(t, ErrUnauthorized, ErrInvalidCredentials)
}
