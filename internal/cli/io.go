package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tincture/internal/compression"
	"github.com/jmylchreest/tincture/pkg/value"
)

// readInput reads path, or stdin when path is empty or "-". Compressed
// input is expanded up to maxBytes.
func readInput(stdin io.Reader, path string, maxBytes int64) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		path = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data, _, err = compression.Decompress(path, data, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// parseData decodes JSON or YAML into native data.
func parseData(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse data: %w", err)
	}
	return out, nil
}

// loadDataFile reads a JSON or YAML mapping for template rendering. An
// empty path yields an empty mapping.
func loadDataFile(path string, maxBytes int64) (map[string]any, error) {
	switch path {
	case "":
		return map[string]any{}, nil
	case "-":
		return nil, fmt.Errorf("data cannot be read from stdin")
	}
	raw, err := readInput(nil, path, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	parsed, err := parseData(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if parsed == nil {
		return map[string]any{}, nil
	}
	m, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: data must be a mapping, got %T", path, parsed)
	}
	return m, nil
}

// writeOutput writes data to path atomically, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// marshalValue encodes v as JSON (mapping order kept) or YAML.
func marshalValue(v value.Value, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(v.Native())
	}
	return nil, fmt.Errorf("unknown format %q (expected json or yaml)", format)
}
