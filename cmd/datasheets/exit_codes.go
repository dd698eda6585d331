package main

import (
	"errors"

	datasheet "github.com/alnah/go-datasheet"
	"github.com/alnah/go-datasheet/internal/assets"
	"github.com/alnah/go-datasheet/internal/config"
)

// Exit codes for the datasheets CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
// Per-document conversion failures and a missing input directory still exit 0:
// they are reported on the console and the run itself completed.
const (
	ExitSuccess = 0 // Run completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
)

// ErrUsage marks command-line errors (unknown command, bad flag, stray argument).
var ErrUsage = errors.New("usage error")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, datasheet.ErrInvalidPaths) {
		return ExitUsage
	}

	return ExitGeneral
}
