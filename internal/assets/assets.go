package assets

import (
	"path/filepath"
	"strings"
)

// DefaultStyleName is the name of the built-in Material Teal stylesheet.
const DefaultStyleName = "material-teal"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// ResolveStyle returns the CSS for a style reference.
// An empty ref yields the default embedded style. A ref ending in ".css" is
// read from disk, with its directory acting as the loader base path. Any other
// ref is looked up among the embedded styles.
func ResolveStyle(ref string) (string, error) {
	if ref == "" {
		return LoadStyle(DefaultStyleName)
	}
	if !strings.EqualFold(filepath.Ext(ref), ".css") {
		return LoadStyle(ref)
	}

	resolver, err := NewAssetResolver(filepath.Dir(ref))
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	return resolver.LoadStyle(name)
}
