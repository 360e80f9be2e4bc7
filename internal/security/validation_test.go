package security

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rgb.txt")
	if err := os.WriteFile(file, []byte("0 0 0\t\tblack\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"regular file", file, nil},
		{"missing", filepath.Join(dir, "nope.txt"), ErrInputMissing},
		{"directory", dir, ErrInputNotRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q does not name the path", err)
			}
		})
	}
}

func TestValidateOutputAbsent(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "x11_colours.html")
	if err := os.WriteFile(existing, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateOutputAbsent(filepath.Join(dir, "new.html")); err != nil {
		t.Errorf("new path: unexpected error %v", err)
	}
	if err := ValidateOutputAbsent(existing); !errors.Is(err, ErrOutputExists) {
		t.Errorf("existing file: error = %v, want ErrOutputExists", err)
	}
	if err := ValidateOutputAbsent(dir); !errors.Is(err, ErrOutputExists) {
		t.Errorf("existing dir: error = %v, want ErrOutputExists", err)
	}

	dangling := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "missing-target"), dangling); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := ValidateOutputAbsent(dangling); !errors.Is(err, ErrOutputExists) {
		t.Errorf("dangling symlink: error = %v, want ErrOutputExists", err)
	}
}

func TestCreateNew(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")

	f, err := CreateNew(path)
	if err != nil {
		t.Fatalf("CreateNew() error: %v", err)
	}
	if _, err := f.WriteString("first"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := CreateNew(path); !errors.Is(err, ErrOutputExists) {
		t.Fatalf("second CreateNew() error = %v, want ErrOutputExists", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestValidateExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "tool")
	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateExecutable(exe); err != nil {
		t.Errorf("executable: unexpected error %v", err)
	}
	if err := ValidateExecutable(plain); !errors.Is(err, ErrNotExecutable) {
		t.Errorf("plain file: error = %v, want ErrNotExecutable", err)
	}
	if err := ValidateExecutable(filepath.Join(dir, "missing")); !errors.Is(err, ErrInputMissing) {
		t.Errorf("missing: error = %v, want ErrInputMissing", err)
	}
}

func TestLimitedReader(t *testing.T) {
	r := NewLimitedReader(bytes.NewReader(make([]byte, 100)), 10)
	n, err := io.Copy(io.Discard, r)
	if n != 10 {
		t.Errorf("copied %d bytes, want 10", n)
	}
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("error = %v, want ErrSizeLimit", err)
	}
}
