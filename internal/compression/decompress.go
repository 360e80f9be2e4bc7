// Package compression opens input files that may be gzip, bzip2, xz or zstd
// compressed, detecting the format from magic bytes.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/daisuke/desktools/internal/security"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Kind names a detected stream encoding.
type Kind string

// Recognised encodings.
const (
	KindPlain Kind = "plain"
	KindGzip  Kind = "gzip"
	KindBzip2 Kind = "bzip2"
	KindXz    Kind = "xz"
	KindZstd  Kind = "zstd"
)

// DefaultMaxSize caps the decompressed size of an input stream.
const DefaultMaxSize = 64 * 1024 * 1024

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// Detect reports the encoding indicated by the leading bytes of a stream.
func Detect(head []byte) Kind {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return KindGzip
	case bytes.HasPrefix(head, bzip2Magic):
		return KindBzip2
	case bytes.HasPrefix(head, zstdMagic):
		return KindZstd
	case bytes.HasPrefix(head, xzMagic):
		return KindXz
	default:
		return KindPlain
	}
}

// readCloser pairs a decoding reader with the closers it depends on.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewReader wraps r with the decoder matching its magic bytes. Plain streams
// are returned as-is. At most maxBytes of decoded data are readable; zero
// means DefaultMaxSize.
func NewReader(r io.Reader, maxBytes int64) (io.ReadCloser, Kind, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSize
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("failed to read stream header: %w", err)
	}

	kind := Detect(head)
	rc := &readCloser{}
	var decoded io.Reader

	switch kind {
	case KindGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		rc.closers = append(rc.closers, gzr.Close)
		decoded = gzr
	case KindBzip2:
		decoded = bzip2.NewReader(br)
	case KindZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create zstd reader: %w", err)
		}
		rc.closers = append(rc.closers, func() error { zr.Close(); return nil })
		decoded = zr
	case KindXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create xz reader: %w", err)
		}
		decoded = xzr
	default:
		decoded = br
	}

	rc.Reader = security.NewLimitedReader(decoded, maxBytes)
	return rc, kind, nil
}

// Open opens path and returns a reader over its decoded contents.
func Open(path string, maxBytes int64) (io.ReadCloser, Kind, error) {
	f, err := os.Open(path) // #nosec G304 - User-specified input path, intended to be read
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}

	rc, kind, err := NewReader(f, maxBytes)
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	inner := rc.(*readCloser)
	inner.closers = append(inner.closers, f.Close)
	return inner, kind, nil
}
