// Package compression transparently decompresses gzip, xz and bzip2 input
// files.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/tincture/internal/security"
)

// Format identifies a compression container.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var magic = []struct {
	format Format
	prefix []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{FormatBzip2, []byte("BZh")},
}

// Detect reports the format of data. The file name extension wins when it
// names a format; otherwise the leading magic bytes decide.
func Detect(name string, data []byte) Format {
	switch {
	case strings.HasSuffix(name, ".gz"), strings.HasSuffix(name, ".tgz"):
		return FormatGzip
	case strings.HasSuffix(name, ".xz"):
		return FormatXz
	case strings.HasSuffix(name, ".bz2"):
		return FormatBzip2
	}
	for _, m := range magic {
		if bytes.HasPrefix(data, m.prefix) {
			return m.format
		}
	}
	return FormatNone
}

// TrimExt removes a compression extension from name, so "theme.j2.gz"
// becomes "theme.j2".
func TrimExt(name string) string {
	for _, ext := range []string{".gz", ".xz", ".bz2"} {
		if before, ok := strings.CutSuffix(name, ext); ok {
			return before
		}
	}
	return name
}

// Decompress expands data when it is compressed and returns it unchanged
// otherwise. The expanded size is limited to maxBytes.
func Decompress(name string, data []byte, maxBytes int64) ([]byte, Format, error) {
	format := Detect(name, data)

	var r io.Reader
	switch format {
	case FormatNone:
		return data, FormatNone, nil
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case FormatBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	}

	out, err := security.ReadAll(r, maxBytes)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s: %w", format, err)
	}
	return out, format, nil
}
