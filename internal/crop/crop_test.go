package crop

import (
	"bytes"
	"errors"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		in      string
		want    Geometry
		wantErr bool
	}{
		{in: "1546x2024+1094+0", want: Geometry{Width: 1546, Height: 2024, X: 1094, Y: 0}},
		{in: "10x20-5+7", want: Geometry{Width: 10, Height: 20, X: -5, Y: 7}},
		{in: "10x20", wantErr: true},
		{in: "0x20+0+0", wantErr: true},
		{in: "axb+1+1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGeometry(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrGeometry) {
					t.Fatalf("error = %v, want ErrGeometry", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseGeometry() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestGeometryFits(t *testing.T) {
	g := Geometry{Width: 100, Height: 50, X: 10, Y: 0}
	if !g.Fits(110, 50) {
		t.Error("region should fit exactly")
	}
	if g.Fits(109, 50) || g.Fits(110, 49) {
		t.Error("region should not fit a smaller image")
	}
	if (Geometry{Width: 1, Height: 1, X: -1}).Fits(10, 10) {
		t.Error("negative offset should not fit")
	}
}

func TestPlan(t *testing.T) {
	region, _ := ParseGeometry(DefaultRegion)
	p := NewPlanner(region)

	job, ok := p.Plan("scans/Newton_001.png")
	if !ok {
		t.Fatal("Plan() rejected a matching file")
	}
	want := Job{
		Source:  "scans/Newton_001.png",
		TIFF:    "scans/Newton_001c.tif",
		PNG:     "scans/Newton_001c.png",
		Crop:    []string{DefaultMagick, "-crop", "1546x2024+1094+0", "scans/Newton_001.png", "scans/Newton_001c.tif"},
		Convert: []string{DefaultMagick, "scans/Newton_001c.tif", "scans/Newton_001c.png"},
	}
	if diff := cmp.Diff(want, job); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}

	for _, path := range []string{"Leibniz_001.png", "Newton_001.jpg", "desktools", "dir/Newton/shot.png"} {
		if _, ok := p.Plan(path); ok {
			t.Errorf("Plan(%q) should not match", path)
		}
	}
}

func TestWrite(t *testing.T) {
	region, _ := ParseGeometry("10x10+0+0")
	p := &Planner{Magick: "magick", Region: region, Prefix: "Newton", Ext: "png"}

	var buf bytes.Buffer
	if err := p.Write(&buf, []string{"notes.txt", "Newton1.png"}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := "# Skipping 'notes.txt'...\n" +
		"# Newton1.png ==> Newton1c.tif\n" +
		"echo magick -crop 10x10+0+0 Newton1.png Newton1c.tif\n" +
		"magick -crop 10x10+0+0 Newton1.png Newton1c.tif\n" +
		"# Newton1c.tif ==> Newton1c.png\n" +
		"echo magick Newton1c.tif Newton1c.png\n" +
		"magick Newton1c.tif Newton1c.png\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandLineQuoting(t *testing.T) {
	got := CommandLine([]string{"magick", "Newton page 1.png", "it's.tif", ""})
	want := `magick 'Newton page 1.png' 'it'\''s.tif' ''`
	if got != want {
		t.Errorf("CommandLine() = %s, want %s", got, want)
	}
}

func TestCheckRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Newton1.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, stdimage.NewGray(stdimage.Rect(0, 0, 20, 10))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	fits := &Planner{Region: Geometry{Width: 10, Height: 10, X: 10}}
	if err := fits.CheckRegion(path); err != nil {
		t.Errorf("CheckRegion() unexpected error: %v", err)
	}
	tooWide := &Planner{Region: Geometry{Width: 11, Height: 10, X: 10}}
	if err := tooWide.CheckRegion(path); err == nil {
		t.Error("CheckRegion() should reject an oversized region")
	}
}
