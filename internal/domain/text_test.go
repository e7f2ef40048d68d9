package domain

import (
	"encoding/json"
	"testing"
)

func TestTextUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Text
		wantErr bool
	}{
		{`"2"`, "2", false},
		{`2`, "2", false},
		{`1.50`, "1.50", false},
		{`true`, "true", false},
		{`null`, "keep", false},
		{`{"a":1}`, "", true},
		{`[1]`, "", true},
	}

	for _, tt := range tests {
		got := Text("keep")
		err := json.Unmarshal([]byte(tt.in), &got)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
