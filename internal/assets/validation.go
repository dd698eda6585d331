package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds style names; longer names are never embedded styles.
const maxAssetNameLength = 128

// ValidateAssetName rejects style names that could address anything other than
// a single CSS file in the loader's directory: empty names, names over
// maxAssetNameLength, and names containing separators, dots or NUL.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxAssetNameLength:
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidAssetName, len(name), maxAssetNameLength)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
