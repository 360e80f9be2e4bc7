package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/daisuke/desktools/internal/security"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

const rgbSample = "255 250 250\t\tsnow\n248 248 255\t\tghost white\n"

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind Kind
	}{
		{"plain", []byte(rgbSample), KindPlain},
		{"gzip", gzipBytes(t, rgbSample), KindGzip},
		{"xz", xzBytes(t, rgbSample), KindXz},
		{"zstd", zstdBytes(t, rgbSample), KindZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, kind, err := NewReader(bytes.NewReader(tt.data), 0)
			if err != nil {
				t.Fatalf("NewReader() error: %v", err)
			}
			defer rc.Close()

			if kind != tt.kind {
				t.Errorf("kind = %q, want %q", kind, tt.kind)
			}
			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("ReadAll() error: %v", err)
			}
			if string(got) != rgbSample {
				t.Errorf("decoded = %q, want %q", got, rgbSample)
			}
		})
	}
}

func TestNewReaderShortAndEmpty(t *testing.T) {
	for _, in := range []string{"", "ab"} {
		rc, kind, err := NewReader(bytes.NewReader([]byte(in)), 0)
		if err != nil {
			t.Fatalf("NewReader(%q) error: %v", in, err)
		}
		if kind != KindPlain {
			t.Errorf("NewReader(%q) kind = %q, want plain", in, kind)
		}
		got, _ := io.ReadAll(rc)
		if string(got) != in {
			t.Errorf("NewReader(%q) read %q", in, got)
		}
	}
}

func TestNewReaderLimit(t *testing.T) {
	data := gzipBytes(t, string(make([]byte, 4096)))
	rc, _, err := NewReader(bytes.NewReader(data), 100)
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}
	if _, err := io.ReadAll(rc); !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("ReadAll() error = %v, want ErrSizeLimit", err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		head []byte
		want Kind
	}{
		{[]byte{0x1f, 0x8b, 0x08}, KindGzip},
		{[]byte("BZh91AY"), KindBzip2},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, KindZstd},
		{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, KindXz},
		{[]byte("255 2"), KindPlain},
		{nil, KindPlain},
	}
	for _, tt := range tests {
		if got := Detect(tt.head); got != tt.want {
			t.Errorf("Detect(%x) = %q, want %q", tt.head, got, tt.want)
		}
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rgb.txt.xz")
	if err := os.WriteFile(path, xzBytes(t, rgbSample), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, kind, err := Open(path, 0)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if kind != KindXz || string(got) != rgbSample {
		t.Errorf("Open() = %q, %q", kind, got)
	}

	if _, _, err := Open(filepath.Join(t.TempDir(), "missing"), 0); err == nil {
		t.Error("Open(missing) should fail")
	}
}
