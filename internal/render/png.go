package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/daisuke/desktools/internal/colour"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// ErrNoEntries is returned when there is nothing to draw.
var ErrNoEntries = errors.New("no colours to render")

// PNGOptions configures the swatch sheet layout.
type PNGOptions struct {
	Columns    int
	CellWidth  int
	CellHeight int
}

// DefaultPNGOptions returns the stock sheet layout.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Columns:    8,
		CellWidth:  160,
		CellHeight: 64,
	}
}

func (o PNGOptions) withDefaults() PNGOptions {
	d := DefaultPNGOptions()
	if o.Columns <= 0 {
		o.Columns = d.Columns
	}
	if o.CellWidth <= 0 {
		o.CellWidth = d.CellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = d.CellHeight
	}
	return o
}

// SheetSize returns the pixel dimensions of a sheet holding n entries.
func (o PNGOptions) SheetSize(n int) (width, height int) {
	o = o.withDefaults()
	cols := min(o.Columns, n)
	rows := (n + o.Columns - 1) / o.Columns
	return cols * o.CellWidth, rows * o.CellHeight
}

// PNG draws one labelled swatch per entry, left to right and top to bottom
// in the order given, and encodes the sheet as PNG.
func PNG(w io.Writer, entries []colour.Entry, opts PNGOptions) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	opts = opts.withDefaults()

	width, height := opts.SheetSize(len(entries))
	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	lineHeight := dc.FontHeight() * 1.4

	for i, e := range entries {
		x := float64((i % opts.Columns) * opts.CellWidth)
		y := float64((i / opts.Columns) * opts.CellHeight)
		cw, ch := float64(opts.CellWidth), float64(opts.CellHeight)

		dc.DrawRectangle(x, y, cw, ch)
		dc.SetColor(e.Color())
		dc.Fill()

		dc.SetColor(colour.TextColour(e.Color()))
		cx, cy := x+cw/2, y+ch/2
		dc.DrawStringAnchored(truncate(e.Name, opts.CellWidth/7), cx, cy-lineHeight/2, 0.5, 0.5)
		dc.DrawStringAnchored(e.Hex(), cx, cy+lineHeight/2, 0.5, 0.5)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// truncate shortens s to at most n bytes, marking the cut with "~".
func truncate(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
