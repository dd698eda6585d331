package main

import (
	"io"
	"os"

	datasheet "github.com/alnah/go-datasheet"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, the working directory and the PDF backend.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Getwd  func() (string, error)

	// Renderer replaces headless Chrome when set (tests).
	Renderer datasheet.PDFRenderer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getwd:  os.Getwd,
	}
}
