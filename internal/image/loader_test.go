package image

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestGetImageDimensions(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))

	encoders := map[string]func(f *os.File) error{
		"shot.png": func(f *os.File) error { return png.Encode(f, img) },
		"shot.tif": func(f *os.File) error { return tiff.Encode(f, img, nil) },
		"shot.bmp": func(f *os.File) error { return bmp.Encode(f, img) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := encode(f); err != nil {
				t.Fatal(err)
			}
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}

			w, h, err := GetImageDimensions(path)
			if err != nil {
				t.Fatalf("GetImageDimensions() error: %v", err)
			}
			if w != 30 || h != 20 {
				t.Errorf("dimensions = %dx%d, want 30x20", w, h)
			}
		})
	}
}

func TestGetImageDimensionsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := GetImageDimensions(""); err == nil {
		t.Error("empty path should fail")
	}
	if _, _, err := GetImageDimensions(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := GetImageDimensions(junk); err == nil {
		t.Error("junk file should fail")
	}
}

func TestIsImageFile(t *testing.T) {
	for _, p := range []string{"Newton001.png", "a/b/C.TIF", "x.webp"} {
		if !IsImageFile(p) {
			t.Errorf("IsImageFile(%q) = false", p)
		}
	}
	for _, p := range []string{"notes.txt", "noext"} {
		if IsImageFile(p) {
			t.Errorf("IsImageFile(%q) = true", p)
		}
	}
}
