package helper

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// DecodeJSONValue turns a stored JSON column into plain structured data.
// Drivers hand these back as text, bytes or already-decoded values depending
// on version; all of them are accepted. If text fails to decode the original
// string is returned.
func DecodeJSONValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case datatypes.JSON:
		return decodeText(string(t))
	case json.RawMessage:
		return decodeText(string(t))
	case []byte:
		return decodeText(string(t))
	case string:
		return decodeText(t)
	case *string:
		if t == nil {
			return nil
		}
		return decodeText(*t)
	default:
		return v
	}
}

func decodeText(s string) any {
	if len(s) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return s
	}
	return out
}
