// Package capture takes a screenshot of the whole screen, clicks to turn the
// page, and repeats, producing one image per page of a document viewer.
package capture

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Direction is the writing direction of the document being captured. It
// decides which edge of the screen the page-turn click is measured from.
type Direction string

// Supported writing directions.
const (
	Vertical   Direction = "vertical"
	Horizontal Direction = "horizontal"
)

// ValidDirections returns the supported writing directions.
func ValidDirections() []Direction {
	return []Direction{Vertical, Horizontal}
}

// ValidFormats returns the image formats the converter may produce.
func ValidFormats() []string {
	return []string{"bmp", "eps", "gif", "jpg", "png", "pdf", "ppm", "ps", "tiff", "wmf"}
}

// Tools holds the paths of the external programs a session drives.
type Tools struct {
	Convert  string
	Import   string
	Xdotool  string
	Xdpyinfo string
}

// DefaultTools returns the pkgsrc/X11R7 install locations.
func DefaultTools() Tools {
	return Tools{
		Convert:  "/usr/pkg/bin/convert",
		Import:   "/usr/pkg/bin/import",
		Xdotool:  "/usr/pkg/bin/xdotool",
		Xdpyinfo: "/usr/X11R7/bin/xdpyinfo",
	}
}

// All returns every tool path with a label, in check order.
func (t Tools) All() [][2]string {
	return [][2]string{
		{"convert", t.Convert},
		{"import", t.Import},
		{"xdotool", t.Xdotool},
		{"xdpyinfo", t.Xdpyinfo},
	}
}

// Config describes one capture run.
type Config struct {
	Book      string
	Format    string
	Dir       string
	Initial   time.Duration
	Interval  time.Duration
	Pages     int
	OffsetX   int
	OffsetY   int
	Direction Direction
	Tools     Tools
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Book:      "book",
		Format:    "png",
		Dir:       ".",
		Initial:   10 * time.Second,
		Interval:  8 * time.Second,
		Pages:     150,
		OffsetX:   3640,
		OffsetY:   1130,
		Direction: Vertical,
		Tools:     DefaultTools(),
	}
}

// Validate checks the configuration for values the session cannot use.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Book) == "" {
		errs = append(errs, errors.New("book name cannot be empty"))
	}
	if strings.ContainsRune(c.Book, '/') {
		errs = append(errs, fmt.Errorf("book name %q must not contain '/'", c.Book))
	}
	if !slices.Contains(ValidFormats(), c.Format) {
		errs = append(errs, fmt.Errorf("invalid format %q (valid: %s)", c.Format, strings.Join(ValidFormats(), ", ")))
	}
	if !slices.Contains(ValidDirections(), c.Direction) {
		errs = append(errs, fmt.Errorf("invalid direction %q (valid: vertical, horizontal)", c.Direction))
	}
	if c.Pages <= 0 {
		errs = append(errs, fmt.Errorf("number of pages must be positive, got %d", c.Pages))
	}
	if c.Initial < 0 || c.Interval < 0 {
		errs = append(errs, errors.New("sleep times cannot be negative"))
	}
	return errors.Join(errs...)
}

// PageFile returns the file name for page i (0-based) with the given extension.
func (c Config) PageFile(i int, ext string) string {
	return fmt.Sprintf("%s_%06d.%s", c.Book, i, ext)
}
