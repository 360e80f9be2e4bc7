package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/daisuke/desktools/internal/colour"
)

// Format identifies an output document type.
type Format string

// Supported output formats.
const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
)

// ValidFormats returns all supported formats.
func ValidFormats() []Format {
	return []Format{FormatHTML, FormatPNG}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatPNG:
		return f, nil
	case "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (valid: html, png)", s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to HTML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatHTML
}

// Options bundles the settings for every format.
type Options struct {
	HTML HTMLOptions
	PNG  PNGOptions
}

// Render writes entries to w in the given format.
func Render(w io.Writer, format Format, entries []colour.Entry, opts Options) error {
	switch format {
	case FormatHTML:
		return HTML(w, entries, opts.HTML)
	case FormatPNG:
		return PNG(w, entries, opts.PNG)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
