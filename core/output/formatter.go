// Package output renders quotes for machines and humans.
package output

import (
	"io"

	"partquote/core/types"
	"partquote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is the flat key-value wire object
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes q to w
	Render(w io.Writer, q types.Quote) error
}

// ForFormat returns the formatter for f
func ForFormat(f Format) (Formatter, error) {
	switch f {
	case FormatJSON:
		return JSONFormatter{}, nil
	case FormatCLI, "":
		return CLIFormatter{}, nil
	default:
		return nil, errors.NotSupported("output format " + string(f))
	}
}
