// Package render writes colour tables as HTML documents or PNG swatch sheets.
package render

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/daisuke/desktools/internal/colour"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Default HTML document settings.
const (
	DefaultTitle       = "X11 Colours"
	DefaultSignature   = "HTML file created by Daisuke"
	DefaultSwatchWidth = 512
)

var htmlTemplate = template.Must(template.ParseFS(templates, "templates/colours.html.tmpl"))

// HTMLOptions configures the HTML document.
type HTMLOptions struct {
	Title       string
	Signature   string
	SwatchWidth int
}

// DefaultHTMLOptions returns the stock document settings.
func DefaultHTMLOptions() HTMLOptions {
	return HTMLOptions{
		Title:       DefaultTitle,
		Signature:   DefaultSignature,
		SwatchWidth: DefaultSwatchWidth,
	}
}

func (o HTMLOptions) withDefaults() HTMLOptions {
	d := DefaultHTMLOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Signature == "" {
		o.Signature = d.Signature
	}
	if o.SwatchWidth <= 0 {
		o.SwatchWidth = d.SwatchWidth
	}
	return o
}

type htmlData struct {
	HTMLOptions
	Entries []colour.Entry
}

// HTML writes a self-contained document with one table row per entry, in
// the order given: name, hex code, red, green, blue and a colour swatch.
func HTML(w io.Writer, entries []colour.Entry, opts HTMLOptions) error {
	bw := bufio.NewWriter(w)
	data := htmlData{HTMLOptions: opts.withDefaults(), Entries: entries}
	if err := htmlTemplate.ExecuteTemplate(bw, "colours.html.tmpl", data); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	return nil
}
