// Package security provides guards for untrusted input.
package security

import (
	"errors"
	"fmt"
	"io"
)

// ErrLimitExceeded is returned once a LimitedReader has produced more than
// its allowance.
var ErrLimitExceeded = errors.New("decompression size limit exceeded")

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bomb attacks when expanding tokens.
// Reading exactly Remaining bytes succeeds; reading one more fails.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining < 0 {
		return 0, ErrLimitExceeded
	}
	// Allow one byte past the limit so a stream of exactly the limit can
	// still report io.EOF.
	if int64(len(p)) > l.Remaining+1 {
		p = p[:l.Remaining+1]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	if l.Remaining < 0 {
		return n, ErrLimitExceeded
	}
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// ReadAll reads r to completion, failing with ErrLimitExceeded when it
// yields more than maxBytes.
func ReadAll(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(NewLimitedReader(r, maxBytes))
	if err != nil {
		if errors.Is(err, ErrLimitExceeded) {
			return nil, fmt.Errorf("%w (limit %d bytes)", ErrLimitExceeded, maxBytes)
		}
		return nil, err
	}
	return data, nil
}
