package token

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ulikunitz/xz/lzma"

	"github.com/jmylchreest/tincture/internal/security"
)

const (
	headerLen  = 13
	dictCap    = 8 << 20
	maxDictCap = 64 << 20
)

// compress writes raw as a classic .lzma stream: lc=3 lp=0 pb=2, 8 MiB
// dictionary, size unknown and terminated by an end-of-stream marker.
func compress(raw []byte) ([]byte, error) {
	cfg := lzma.WriterConfig{
		Properties: &lzma.Properties{LC: 3, LP: 0, PB: 2},
		DictCap:    dictCap,
		EOSMarker:  true,
	}
	var buf bytes.Buffer
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create lzma writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish lzma stream: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte, maxBytes int64) ([]byte, error) {
	if err := checkHeader(data); err != nil {
		return nil, err
	}
	br := bytes.NewReader(data)
	r, err := lzma.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to create lzma reader: %w", err)
	}
	raw, err := security.ReadAll(r, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if br.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after end of stream", br.Len())
	}
	return raw, nil
}

// checkHeader rejects headers that would make the reader allocate an
// oversized dictionary before any payload is read.
func checkHeader(data []byte) error {
	if len(data) < headerLen {
		return fmt.Errorf("stream too short: %d bytes", len(data))
	}
	if data[0] >= 9*5*5 {
		return fmt.Errorf("invalid properties byte %#x", data[0])
	}
	if dc := binary.LittleEndian.Uint32(data[1:5]); dc > maxDictCap {
		return fmt.Errorf("dictionary size %d exceeds %d", dc, maxDictCap)
	}
	return nil
}
