package deeplink

import (
	"errors"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		// Valid ids
		{name: "numeric photo id", id: "123456", wantErr: nil},
		{name: "uuid", id: "8d1e3f2a-2b7c-4e8a-9f00-1234567890ab", wantErr: nil},
		{name: "mixed case", id: "AbC123", wantErr: nil},
		{name: "underscore and dot", id: "a_b.c", wantErr: nil},

		// Empty
		{name: "empty string", id: "", wantErr: ErrIDEmpty},

		// Format violations
		{name: "contains slash", id: "a/b", wantErr: ErrIDFormat},
		{name: "contains question mark", id: "a?b", wantErr: ErrIDFormat},
		{name: "contains hash", id: "a#b", wantErr: ErrIDFormat},
		{name: "contains percent", id: "a%20b", wantErr: ErrIDFormat},
		{name: "contains space", id: "a b", wantErr: ErrIDFormat},
		{name: "contains newline", id: "a\nb", wantErr: ErrIDFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateID(%q) = %v, want nil", tt.id, err)
				}
				return
			}
			if err == nil {
				t.Errorf("ValidateID(%q) = nil, want %v", tt.id, tt.wantErr)
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateID(%q) = %v, want error wrapping %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
