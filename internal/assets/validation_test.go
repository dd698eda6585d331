package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid names
		{name: "simple name", input: "material", wantErr: nil},
		{name: "name with hyphen", input: "material-teal", wantErr: nil},
		{name: "name with underscore", input: "my_style", wantErr: nil},
		{name: "name with numbers", input: "style123", wantErr: nil},
		{name: "mixed case", input: "MyStyle", wantErr: nil},

		// Invalid names
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "path/to/style", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "path\\to\\style", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "..", wantErr: ErrInvalidAssetName},
		{name: "extension included", input: "style.css", wantErr: ErrInvalidAssetName},
		{name: "NUL byte", input: "style\x00", wantErr: ErrInvalidAssetName},
		{name: "too long", input: strings.Repeat("a", maxAssetNameLength+1), wantErr: ErrInvalidAssetName},
		{name: "at limit", input: strings.Repeat("a", maxAssetNameLength), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
