package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns a solid truecolour block for e, width cells wide.
func ColourPreview(e Entry, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return background(e) + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a colour block with text centred on it.
// The text colour is chosen to have good contrast with the background.
func ColourPreviewWithText(e Entry, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := TextColour(e.Color())
	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return background(e) + fgColour + displayText + ansiReset
}

func background(e Entry) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, e.Red, e.Green, e.Blue, ansiSuffix)
}
