// Package colour parses X11 colour-name databases (rgb.txt) into a table of
// named colours.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
)

// Channel names a single intensity component of a colour.
type Channel string

// Channel identifiers, in the column order used by rgb.txt.
const (
	ChannelRed   Channel = "red"
	ChannelGreen Channel = "green"
	ChannelBlue  Channel = "blue"
)

// channels lists the channels in rgb.txt column order.
var channels = [3]Channel{ChannelRed, ChannelGreen, ChannelBlue}

// Entry is a single named colour from the database.
type Entry struct {
	Name  string `json:"name"`
	Red   int    `json:"r"`
	Green int    `json:"g"`
	Blue  int    `json:"b"`
}

// Hex returns the colour as a lower-case "#rrggbb" string.
func (e Entry) Hex() string {
	return "#" + HexByte(e.Red) + HexByte(e.Green) + HexByte(e.Blue)
}

// String returns the entry as "name (#rrggbb)".
func (e Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Hex())
}

// Color converts the entry to an opaque color.RGBA.
// Channels are expected to be within 0-255.
func (e Entry) Color() color.RGBA {
	return color.RGBA{R: uint8(e.Red), G: uint8(e.Green), B: uint8(e.Blue), A: 0xff} // #nosec G115 - range checked by ParseLine
}

// HexByte formats v as two lower-case hex digits, zero-padded.
func HexByte(v int) string {
	s := strconv.FormatInt(int64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
