// Package crop prints ImageMagick command lines that crop screenshots to a
// fixed region and convert them through TIFF back to PNG.
package crop

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrGeometry is returned for strings that are not WxH+X+Y.
var ErrGeometry = errors.New("invalid geometry, expected WxH+X+Y")

var geometryPattern = regexp.MustCompile(`^(\d+)x(\d+)([+-]\d+)([+-]\d+)$`)

// Geometry is an ImageMagick crop region.
type Geometry struct {
	Width  int
	Height int
	X      int
	Y      int
}

// ParseGeometry parses an ImageMagick geometry such as "1546x2024+1094+0".
func ParseGeometry(s string) (Geometry, error) {
	m := geometryPattern.FindStringSubmatch(s)
	if m == nil {
		return Geometry{}, fmt.Errorf("%w: %q", ErrGeometry, s)
	}

	var vals [4]int
	for i := range vals {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Geometry{}, fmt.Errorf("%w: %q", ErrGeometry, s)
		}
		vals[i] = v
	}
	g := Geometry{Width: vals[0], Height: vals[1], X: vals[2], Y: vals[3]}
	if g.Width == 0 || g.Height == 0 {
		return Geometry{}, fmt.Errorf("%w: %q has zero size", ErrGeometry, s)
	}
	return g, nil
}

// String formats the geometry as WxH+X+Y.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", g.Width, g.Height, g.X, g.Y)
}

// Fits reports whether the region lies entirely inside a width x height image.
func (g Geometry) Fits(width, height int) bool {
	return g.X >= 0 && g.Y >= 0 && g.X+g.Width <= width && g.Y+g.Height <= height
}

// Set implements pflag.Value.
func (g *Geometry) Set(s string) error {
	parsed, err := ParseGeometry(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Type implements pflag.Value.
func (g *Geometry) Type() string {
	return "geometry"
}
