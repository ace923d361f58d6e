package helper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDecodeJSONValue(t *testing.T) {
	bank := map[string]any{"bankName": "X"}
	text := `{"bankName":"X"}`

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", text, bank},
		{"bytes", []byte(text), bank},
		{"raw message", json.RawMessage(text), bank},
		{"datatypes", datatypes.JSON(text), bank},
		{"structured", bank, bank},
		{"empty bytes", []byte{}, nil},
		{"invalid text falls back", "not json", "not json"},
		{"invalid bytes fall back", []byte("{broken"), "{broken"},
		{"number", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeJSONValue(tt.in))
		})
	}
}
