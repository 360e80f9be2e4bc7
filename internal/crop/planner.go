package crop

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/daisuke/desktools/internal/image"
)

// Defaults matching the book-scanning setup the tool was written for.
const (
	DefaultMagick = "/usr/pkg/bin/magick"
	DefaultRegion = "1546x2024+1094+0"
	DefaultPrefix = "Newton"
	DefaultExt    = "png"

	// croppedSuffix is appended to the stem of every generated file.
	croppedSuffix = "c"
)

// Job is the pair of commands generated for one screenshot.
type Job struct {
	Source  string
	TIFF    string
	PNG     string
	Crop    []string
	Convert []string
}

// Planner decides which files to process and builds their commands.
type Planner struct {
	Magick string
	Region Geometry
	Prefix string
	Ext    string
}

// NewPlanner returns a planner using the default tool path, prefix and extension.
func NewPlanner(region Geometry) *Planner {
	return &Planner{
		Magick: DefaultMagick,
		Region: region,
		Prefix: DefaultPrefix,
		Ext:    DefaultExt,
	}
}

// Matches reports whether path names a file the planner should crop.
func (p *Planner) Matches(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, p.Prefix) &&
		strings.EqualFold(strings.TrimPrefix(filepath.Ext(base), "."), p.Ext)
}

// Plan builds the commands for path. The second result is false when the
// file does not match the planner's prefix and extension.
func (p *Planner) Plan(path string) (Job, bool) {
	if !p.Matches(path) {
		return Job{}, false
	}

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	job := Job{
		Source: path,
		TIFF:   stem + croppedSuffix + ".tif",
		PNG:    stem + croppedSuffix + ".png",
	}
	job.Crop = []string{p.Magick, "-crop", p.Region.String(), job.Source, job.TIFF}
	job.Convert = []string{p.Magick, job.TIFF, job.PNG}
	return job, true
}

// CheckRegion reports an error when the crop region does not fit inside the
// image at path.
func (p *Planner) CheckRegion(path string) error {
	w, h, err := image.GetImageDimensions(path)
	if err != nil {
		return err
	}
	if !p.Region.Fits(w, h) {
		return fmt.Errorf("region %s exceeds %dx%d image %s", p.Region, w, h, path)
	}
	return nil
}

// Write prints the shell commands for every path to w. Non-matching paths
// produce a "# Skipping" comment line.
func (p *Planner) Write(w io.Writer, paths []string) error {
	for _, path := range paths {
		job, ok := p.Plan(path)
		if !ok {
			if _, err := fmt.Fprintf(w, "# Skipping '%s'...\n", path); err != nil {
				return err
			}
			continue
		}
		if err := writeStep(w, job.Source, job.TIFF, job.Crop); err != nil {
			return err
		}
		if err := writeStep(w, job.TIFF, job.PNG, job.Convert); err != nil {
			return err
		}
	}
	return nil
}

func writeStep(w io.Writer, from, to string, args []string) error {
	line := CommandLine(args)
	_, err := fmt.Fprintf(w, "# %s ==> %s\necho %s\n%s\n", from, to, line, line)
	return err
}

// CommandLine joins args into a single shell command, quoting any argument
// that the shell would otherwise split or expand.
func CommandLine(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
