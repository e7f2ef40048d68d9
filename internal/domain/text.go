package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a loosely typed JSON scalar kept in textual form.
// Strings decode as-is; numbers and booleans keep their literal text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[':
		return fmt.Errorf("expected a string or number, got %s", data)
	default:
		if string(data) == "null" {
			return nil
		}
		*t = Text(data)
	}
	return nil
}
