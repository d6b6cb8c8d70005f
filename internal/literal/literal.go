// Package literal parses the small literal language used by registry
// examples and pongo2 filter parameters: numbers, true, false, null,
// double-quoted strings and identifiers resolved against an environment.
package literal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/tincture/pkg/value"
)

// Env resolves identifiers. A nil Env resolves nothing.
type Env map[string]value.Value

// SyntaxError reports literal text that could not be parsed.
type SyntaxError struct {
	Text   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid literal %q: %s", e.Text, e.Reason)
}

// Parse parses a single literal.
func Parse(text string, env Env) (value.Value, error) {
	s := strings.TrimSpace(text)
	switch {
	case s == "":
		return value.Value{}, &SyntaxError{Text: text, Reason: "empty"}
	case s == "true":
		return value.FromBool(true), nil
	case s == "false":
		return value.FromBool(false), nil
	case s == "null":
		return value.Null(), nil
	case s[0] == '"':
		u, err := strconv.Unquote(s)
		if err != nil {
			return value.Value{}, &SyntaxError{Text: text, Reason: "bad string"}
		}
		return value.FromString(u), nil
	case isNumberStart(s[0]):
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || !isDecimal(s) {
			return value.Value{}, &SyntaxError{Text: text, Reason: "bad number"}
		}
		return value.FromNumber(n), nil
	case isIdent(s):
		v, ok := env[s]
		if !ok {
			return value.Value{}, &SyntaxError{Text: text, Reason: "unknown identifier"}
		}
		return v, nil
	}
	return value.Value{}, &SyntaxError{Text: text, Reason: "unrecognised"}
}

// Arg is one name=value pair in source order.
type Arg struct {
	Name  string
	Value value.Value
}

// ParseArgs parses a comma separated list of name=literal pairs, for
// example `hue=30, color="#d20f39"`. Empty input yields no arguments.
func ParseArgs(text string, env Env) ([]Arg, error) {
	parts, err := split(text)
	if err != nil {
		return nil, err
	}
	args := make([]Arg, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		name, lit, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || !isIdent(name) {
			return nil, &SyntaxError{Text: part, Reason: "expected name=value"}
		}
		if seen[name] {
			return nil, &SyntaxError{Text: part, Reason: "duplicate argument"}
		}
		seen[name] = true
		v, err := Parse(lit, env)
		if err != nil {
			return nil, err
		}
		args = append(args, Arg{Name: name, Value: v})
	}
	return args, nil
}

// split cuts text at commas outside double-quoted strings.
func split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var (
		parts   []string
		start   int
		inQuote bool
	)
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		case !inQuote && c == ',':
			parts = append(parts, text[start:i])
			start = i + 1
		}
	}
	if inQuote {
		return nil, &SyntaxError{Text: text, Reason: "unterminated string"}
	}
	return append(parts, text[start:]), nil
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

// isDecimal rejects the spellings ParseFloat accepts beyond plain decimals,
// such as "Inf", hex floats and digit separators.
func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c == '.', c == '-', c == '+', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !letter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return true
}
