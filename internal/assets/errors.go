package assets

import "errors"

// Sentinel errors for stylesheet lookup.
var (
	// ErrStyleNotFound: no embedded style or CSS file by that name.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName: a style name carrying separators, dots or traversal.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath: the directory of a --style CSS file is missing or not a directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead: the CSS file exists but could not be read.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal: the resolved CSS file escapes its base directory (symlink).
	ErrPathTraversal = errors.New("path traversal detected")
)
