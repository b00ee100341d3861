package service

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// A Boolean is a boolean decoded from any JSON value.
// Falsy values are false, 0, "" and null; any other value is true.
// An absent value stays false.
type Boolean bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *Boolean) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*b = false
		return nil
	}

	switch data[0] {
	case 'n': // null
		*b = false
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = Boolean(v)
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = v != ""
	case '{', '[':
		*b = true
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*b = v != 0
	}

	return nil
}
