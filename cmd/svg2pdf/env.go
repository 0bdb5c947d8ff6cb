package main

import (
	"context"
	"io"
	"os"

	svg2pdf "github.com/alnah/go-svg2pdf"
)

// Converter is the conversion service used by the CLI. It is satisfied
// by *svg2pdf.Converter and replaced by a stub in tests.
type Converter interface {
	Convert(ctx context.Context, input svg2pdf.Input) (*svg2pdf.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*svg2pdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...svg2pdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...svg2pdf.Option) (Converter, error) {
			return svg2pdf.New(opts...)
		},
	}
}
