package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/tincture/internal/security"
)

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func xzed(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz.NewWriter: %v", err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func TestDecompress(t *testing.T) {
	const text = "{{ css_rgb \"color\" .red }}\n"

	tests := []struct {
		name   string
		file   string
		data   []byte
		format Format
	}{
		{"plain", "theme.tmpl", []byte(text), FormatNone},
		{"gzip by extension", "theme.tmpl.gz", gzipped(t, text), FormatGzip},
		{"gzip by magic", "-", gzipped(t, text), FormatGzip},
		{"xz by extension", "theme.tmpl.xz", xzed(t, text), FormatXz},
		{"xz by magic", "stdin", xzed(t, text), FormatXz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, format, err := Decompress(tt.file, tt.data, 1024)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %q, want %q", format, tt.format)
			}
			if string(got) != text {
				t.Errorf("Decompress() = %q, want %q", got, text)
			}
		})
	}
}

func TestDecompressErrors(t *testing.T) {
	t.Run("corrupt gzip", func(t *testing.T) {
		if _, _, err := Decompress("x.gz", []byte("not gzip"), 1024); err == nil {
			t.Error("Decompress() succeeded")
		}
	})

	t.Run("corrupt bzip2", func(t *testing.T) {
		if _, _, err := Decompress("x.bz2", []byte("BZh9 nonsense"), 1024); err == nil {
			t.Error("Decompress() succeeded")
		}
	})

	t.Run("over limit", func(t *testing.T) {
		data := gzipped(t, strings.Repeat("a", 4096))
		_, _, err := Decompress("big.gz", data, 100)
		if !errors.Is(err, security.ErrLimitExceeded) {
			t.Errorf("Decompress() error = %v, want ErrLimitExceeded", err)
		}
	})
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"a.bz2", nil, FormatBzip2},
		{"a", []byte("BZh91AY"), FormatBzip2},
		{"a.tgz", nil, FormatGzip},
		{"a.json", []byte("{}"), FormatNone},
	}
	for _, tt := range tests {
		if got := Detect(tt.name, tt.data); got != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTrimExt(t *testing.T) {
	for in, want := range map[string]string{
		"theme.j2.gz":  "theme.j2",
		"data.yaml.xz": "data.yaml",
		"a.bz2":        "a",
		"plain.tmpl":   "plain.tmpl",
	} {
		if got := TrimExt(in); got != want {
			t.Errorf("TrimExt(%q) = %q, want %q", in, got, want)
		}
	}
}
