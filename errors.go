package datasheet

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrDirectoryNotFound = errors.New("input directory not found")
	ErrInvalidPaths      = errors.New("invalid paths")
	ErrReadMarkdown      = errors.New("failed to read markdown")
	ErrCompose           = errors.New("HTML composition failed")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrInvalidPDF        = errors.New("renderer produced an invalid PDF")
	ErrWritePDF          = errors.New("failed to write PDF")
	ErrInternal          = errors.New("internal error")
)

// DocumentError records the failure of a single document conversion.
// It unwraps to the underlying cause so callers can use errors.Is.
type DocumentError struct {
	Path string // input path of the failed document
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
