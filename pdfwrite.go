package datasheet

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/alnah/go-datasheet/internal/fileutil"
	"github.com/alnah/go-datasheet/internal/hints"
)

// File and directory permissions for generated PDFs.
const (
	pdfFilePerm = 0o644
	pdfDirPerm  = 0o750
)

// PDFValidator checks rendered bytes before they are committed to disk.
type PDFValidator interface {
	// Validate returns the page count of a well-formed PDF.
	Validate(pdf []byte) (pages int, err error)
}

// Compile-time interface check.
var _ PDFValidator = (*PDFCPUValidator)(nil)

// disableConfigDir stops pdfcpu from creating its config directory under
// the user's home on first use.
var disableConfigDir sync.Once

// PDFCPUValidator parses and validates PDFs with pdfcpu in relaxed mode.
type PDFCPUValidator struct{}

// Validate reads pdf through pdfcpu's validator and returns its page count.
func (PDFCPUValidator) Validate(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, fmt.Errorf("%w: empty output", ErrInvalidPDF)
	}

	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if ctx.PageCount < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}
	return ctx.PageCount, nil
}

// PDFWriter validates PDF bytes and writes them atomically: either the whole
// file appears at the destination or nothing does.
type PDFWriter struct {
	validator PDFValidator
}

// NewPDFWriter creates a PDFWriter. A nil validator skips validation.
func NewPDFWriter(validator PDFValidator) *PDFWriter {
	return &PDFWriter{validator: validator}
}

// Write validates pdf and stores it at path, creating parent directories.
// It returns the page count, or 0 when validation is disabled.
func (w *PDFWriter) Write(path string, pdf []byte) (int, error) {
	pages := 0
	if w.validator != nil {
		n, err := w.validator.Validate(pdf)
		if err != nil {
			return 0, err
		}
		pages = n
	}

	if err := fileutil.WriteFileAtomic(path, pdf, pdfFilePerm, pdfDirPerm); err != nil {
		return 0, fmt.Errorf("%w: %v%s", ErrWritePDF, err, hints.ForOutputDirectory())
	}
	return pages, nil
}
