package literal

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/tincture/pkg/value"
)

func TestParse(t *testing.T) {
	env := Env{"red": value.FromString("#d20f39")}

	tests := []struct {
		text string
		want value.Value
	}{
		{"30", value.FromNumber(30)},
		{" 0.5 ", value.FromNumber(0.5)},
		{"-12.25", value.FromNumber(-12.25)},
		{"1e3", value.FromNumber(1000)},
		{"true", value.FromBool(true)},
		{"false", value.FromBool(false)},
		{"null", value.Null()},
		{`"hue"`, value.FromString("hue")},
		{`"a, \"b\""`, value.FromString(`a, "b"`)},
		{`""`, value.FromString("")},
		{"red", value.FromString("#d20f39")},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text, env)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"", "  ", "blue", `"open`, "0x10", "1_000", "Inf", "-", "1.2.3", "a-b", "[1]"} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text, nil)
			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Errorf("Parse(%q) error = %v, want SyntaxError", text, err)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	env := Env{"base": value.FromNumber(7)}

	tests := []struct {
		text string
		want []Arg
	}{
		{"", []Arg{}},
		{"hue=30", []Arg{{"hue", value.FromNumber(30)}}},
		{`field="saturation", amount=0.5`, []Arg{
			{"field", value.FromString("saturation")},
			{"amount", value.FromNumber(0.5)},
		}},
		{`color=base,sep=", "`, []Arg{
			{"color", value.FromNumber(7)},
			{"sep", value.FromString(", ")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseArgs(tt.text, env)
			if err != nil {
				t.Fatalf("ParseArgs() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseArgs() = %d args, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Name != tt.want[i].Name || !got[i].Value.Equal(tt.want[i].Value) {
					t.Errorf("arg %d = %s=%v, want %s=%v", i, got[i].Name, got[i].Value, tt.want[i].Name, tt.want[i].Value)
				}
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	for _, text := range []string{"30", "=30", "a=1, a=2", `a="x`, "a=1,", "a=nope"} {
		t.Run(text, func(t *testing.T) {
			if _, err := ParseArgs(text, nil); err == nil {
				t.Errorf("ParseArgs(%q) succeeded", text)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	got, err := split(`a=1, b="x,y", c="\"q\""`)
	if err != nil {
		t.Fatalf("split() error = %v", err)
	}
	want := []string{"a=1", ` b="x,y"`, ` c="\"q\""`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("split() mismatch (-want +got):\n%s", diff)
	}
}
