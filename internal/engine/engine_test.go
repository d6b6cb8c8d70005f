package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tincture/internal/ops"
)

const mochaToken = "XQAAgAD__________wANAV-FFWbg_rd8I__-9jAA"

func testData() map[string]any {
	return map[string]any{
		"red":  map[string]any{"h": 347, "s": 0.87, "l": 0.44, "a": 1},
		"base": map[string]any{"h": 220, "s": 0.23, "l": 0.95, "a": 1},
		"name": "mocha",
		"nested": map[string]any{
			"list":  []any{1, "two", true, nil, []any{}},
			"empty": map[string]any{},
		},
		"mix_args": map[string]any{"color": "#eff1f5", "amount": 0.5},
	}
}

func newTestEngine() *Engine {
	return New(ops.NewSet(), WithLogger(hclog.NewNullLogger()))
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"text", "pongo2"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q) error = %v", s, err)
		}
	}
	if _, err := ParseKind("jinja"); err == nil {
		t.Error("ParseKind(jinja) succeeded")
	}
}

func TestRenderText(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"add", `{{ (.red | add "hue" 30).hex }}`, "#d2460f"},
		{"add field form", `{{ (.red | add "field" "saturation" "amount" 0.1).hex }}`, "#dd0333"},
		{"sub", `{{ (.red | sub "saturation" 60).hex }}`, "#8e525f"},
		{"mod", `{{ (.red | mod "opacity" 0.5).hex }}`, "#d20f3980"},
		{"mix", `{{ (.red | mix "color" .base "amount" 0.5).hex }}`, "#c486dc"},
		{"chain", `{{ (.red | add "hue" 30 | sub "hue" 30).hex }}`, "#d20f39"},
		{"trunc", `{{ 1.123456 | trunc "places" 3 }}`, "1.123"},
		{"css_rgb", `{{ css_rgb "color" .red }}`, "rgb(210, 15, 57)"},
		{"css_rgba", `{{ css_rgba "color" .red }}`, "rgba(210, 15, 57, 1.00)"},
		{"css_hsl", `{{ css_hsl "color" .red }}`, "hsl(347, 87%, 44%)"},
		{"css_hsla from hex", `{{ css_hsla "color" "#d20f39" }}`, "hsla(347, 87%, 44%, 1.00)"},
		{"ternary true", `{{ ternary "cond" true "t" 1 "f" 0 }}`, "1"},
		{"ternary false", `{{ ternary "cond" false "t" 1 "f" 0 }}`, "0"},
		{"object", `{{ $o := object "b" 2 "a" 1 }}{{ $o.a }},{{ $o.b }}`, "1,2"},
		{"urlencode filter", `{{ .name | urlencode }}`, mochaToken},
		{"urlencode function", `{{ urlencode "value" "mocha" }}`, mochaToken},
		{"urldecode", `{{ .name | urlencode | urldecode }}`, "mocha"},
		{"round trip nested", `{{ $n := .nested | urlencode | urldecode }}{{ index $n.list 1 }}`, "two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(KindText, tt.name, tt.tmpl, testData())
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTextErrors(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		tmpl string
		want any
	}{
		{"missing amount", `{{ .red | add "field" "hue" }}`, new(*ops.MissingArgumentError)},
		{"bad places", `{{ 1.5 | trunc "places" -1 }}`, new(*ops.InvalidArgumentError)},
		{"cond not bool", `{{ ternary "cond" 1 "t" 1 "f" 0 }}`, new(*ops.TypeMismatchError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Render(KindText, tt.name, tt.tmpl, testData())
			if err == nil {
				t.Fatal("Render() succeeded")
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("error %q does not name the template", err)
			}
			if !errors.As(err, tt.want) {
				t.Errorf("Render() error = %v, want %T", err, tt.want)
			}
		})
	}

	for _, tmpl := range []string{
		`{{ css_rgb "color" }}`,
		`{{ css_rgb 1 .red }}`,
		`{{ add "hue" 30 }}`,
		`{{ .red | add "hue" 30 "hue" 40 }}`,
	} {
		if _, err := e.Render(KindText, "bad", tmpl, testData()); err == nil {
			t.Errorf("Render(%s) succeeded", tmpl)
		}
	}
}

func TestFuncMapNames(t *testing.T) {
	funcs := newTestEngine().FuncMap()
	for _, name := range []string{"add", "sub", "mod", "mix", "trunc", "urlencode", "urldecode", "ternary", "object", "css_rgb", "css_rgba", "css_hsl", "css_hsla"} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("FuncMap() missing %q", name)
		}
	}
	if _, ok := funcs["if"]; ok {
		t.Error("FuncMap() exposes the keyword if")
	}
}

func TestRenderPongo2(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"add", `{% with c=red|add:"hue=30" %}{{ c.hex }}{% endwith %}`, "#d2460f"},
		{"add field form", `{% with c=red|add:"field=\"saturation\", amount=0.1" %}{{ c.hex }}{% endwith %}`, "#dd0333"},
		{"mod", `{% with c=red|mod:"lightness=80" %}{{ c.hex }}{% endwith %}`, "#f8a0b3"},
		{"mix mapping param", `{% with c=red|mix:mix_args %}{{ c.hex }}{% endwith %}`, "#c486dc"},
		{"chain", `{% with c=red|add:"hue=30"|sub:"hue=30" %}{{ c.hex }}{% endwith %}`, "#d20f39"},
		{"channel access", `{% with c=red|mod:"hue=90" %}{{ c.h }}{% endwith %}`, "90"},
		{"trunc", `{{ 1.123456|trunc:"places=3" }}`, "1.123"},
		{"css_rgb", `{{ css_rgb("color", red) }}`, "rgb(210, 15, 57)"},
		{"css_hsla", `{{ css_hsla("color", red) }}`, "hsla(347, 87%, 44%, 1.00)"},
		{"if", `{{ if("cond", true, "t", 1, "f", 0) }}`, "1"},
		{"urlencode filter", `{{ name|urlencode }}`, mochaToken},
		{"urlencode function", `{{ urlencode("value", "mocha") }}`, mochaToken},
		{"urldecode", `{{ name|urlencode|urldecode }}`, "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(KindPongo2, tt.name, tt.tmpl, testData())
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderPongo2Errors(t *testing.T) {
	e := newTestEngine()
	for _, tmpl := range []string{
		`{{ red|add }}`,
		`{{ red|add:"warmth=3" }}`,
		`{{ red|add:"hue=" }}`,
		`{{ red|mix:3 }}`,
		`{{ css_rgb("color") }}`,
		`{{ if("cond", 1, "t", 1, "f", 0) }}`,
	} {
		if _, err := e.Render(KindPongo2, "bad", tmpl, testData()); err == nil {
			t.Errorf("Render(%s) succeeded", tmpl)
		}
	}
}

func TestInstallPongo2Once(t *testing.T) {
	if err := newTestEngine().InstallPongo2(); err != nil {
		t.Fatalf("InstallPongo2() error = %v", err)
	}
	if err := newTestEngine().InstallPongo2(); err != nil {
		t.Fatalf("second InstallPongo2() error = %v", err)
	}
}

func TestInstallPongo2OtherSet(t *testing.T) {
	if err := newTestEngine().InstallPongo2(); err != nil {
		t.Fatalf("InstallPongo2() error = %v", err)
	}

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})
	other := New(ops.NewSet(), WithLogger(logger))
	if err := other.InstallPongo2(); err != nil {
		t.Fatalf("InstallPongo2() error = %v", err)
	}
	if !strings.Contains(buf.String(), "already installed from another operation set") {
		t.Errorf("mismatched set not logged: %q", buf.String())
	}
}

func TestRenderUnknownEngine(t *testing.T) {
	if _, err := newTestEngine().Render(Kind("erb"), "x", "", nil); err == nil {
		t.Error("Render() with unknown engine succeeded")
	}
}
