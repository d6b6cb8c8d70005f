package registry

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/ops"
	"github.com/jmylchreest/tincture/pkg/value"
)

func TestExamples(t *testing.T) {
	set := ops.NewSet()
	for _, d := range All() {
		for i, ex := range d.Examples {
			t.Run(string(d.Kind)+"/"+d.Name, func(t *testing.T) {
				got, err := Run(set, d, ex)
				if err != nil {
					t.Fatalf("example %d: %v", i+1, err)
				}
				if got != ex.Output {
					t.Errorf("example %d = %q, want %q", i+1, got, ex.Output)
				}
			})
		}
	}
}

func TestVerify(t *testing.T) {
	for _, f := range Verify(ops.NewSet()) {
		t.Error(f)
	}
}

func TestCatalogShape(t *testing.T) {
	names := func(ds []Descriptor) []string {
		out := make([]string, len(ds))
		for i, d := range ds {
			out[i] = d.Name
		}
		return out
	}
	set := ops.NewSet()

	if diff := cmp.Diff(set.FilterNames(), names(Filters())); diff != "" {
		t.Errorf("filters out of step with ops (-ops +catalog):\n%s", diff)
	}
	if diff := cmp.Diff(set.FunctionNames(), names(Functions())); diff != "" {
		t.Errorf("functions out of step with ops (-ops +catalog):\n%s", diff)
	}

	for _, d := range All() {
		if strings.TrimSpace(d.Description) == "" {
			t.Errorf("%s %s has no description", d.Kind, d.Name)
		}
		if len(d.Examples) == 0 {
			t.Errorf("%s %s has no examples", d.Kind, d.Name)
		}
		for i, ex := range d.Examples {
			if d.Kind == KindFunction && ex.Input != "" {
				t.Errorf("function %s example %d has piped input", d.Name, i+1)
			}
			if d.Kind == KindFilter && ex.Input == "" {
				t.Errorf("filter %s example %d has no input", d.Name, i+1)
			}
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	first := Filters()
	first[0].Name = "changed"
	first[0].Examples[0].Args[0].Text = "999"

	again := Filters()
	if again[0].Name != "add" {
		t.Errorf("Filters()[0].Name = %q after mutation", again[0].Name)
	}
	if again[0].Examples[0].Args[0].Text != "30" {
		t.Errorf("example arg = %q after mutation", again[0].Examples[0].Args[0].Text)
	}

	d, ok := Lookup(KindFunction, "css_rgb")
	if !ok {
		t.Fatal("Lookup(css_rgb) not found")
	}
	d.Examples[0].Output = "x"
	d2, _ := Lookup(KindFunction, "css_rgb")
	if d2.Examples[0].Output != "rgb(210, 15, 57)" {
		t.Error("Lookup exposed internal state")
	}

	if _, ok := Lookup(KindFilter, "css_rgb"); ok {
		t.Error("Lookup found a function under the filter kind")
	}
}

func TestConcurrentReads(t *testing.T) {
	set := ops.NewSet()
	done := make(chan []Failure)
	for range 8 {
		go func() { done <- Verify(set) }()
	}
	for range 8 {
		if failures := <-done; len(failures) != 0 {
			t.Errorf("concurrent Verify() reported %v", failures)
		}
	}
}

func TestRunLiterals(t *testing.T) {
	d := Descriptor{Kind: KindFunction, Name: "css_rgb"}
	_, err := Run(ops.NewSet(), d, call("", "color", "nope"))
	if err == nil {
		t.Fatal("Run() with unknown fixture succeeded")
	}

	got, err := Run(ops.NewSet(), d, call("", "color", `"#d20f39"`))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "rgb(210, 15, 57)" {
		t.Errorf("Run() = %q", got)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want string
	}{
		{"colour", colour.ToValue(colour.New(347, 0.87, 0.44, 1)), "#d20f39"},
		{"translucent colour", colour.ToValue(colour.New(347, 0.87, 0.44, 0.5)), "#d20f3980"},
		{"plain mapping", Fixtures()["red"], "{h: 347, s: 0.87, l: 0.44, a: 1}"},
		{"number", value.FromNumber(1.5), "1.5"},
		{"string", value.FromString("mocha"), "mocha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.v); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExampleCall(t *testing.T) {
	tests := []struct {
		name string
		ex   Example
		want string
	}{
		{"add", piped("red", "", "hue", "30"), "red | add(hue=30)"},
		{"urlencode", piped(`"mocha"`, ""), `"mocha" | urlencode`},
		{"css_rgb", call("", "color", "red"), "css_rgb(color=red)"},
		{"object", call(""), "object()"},
		{"mix", piped("red", "", "color", "base", "amount", "0.5"), "red | mix(color=base, amount=0.5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ex.Call(tt.name); got != tt.want {
				t.Errorf("Call() = %q, want %q", got, tt.want)
			}
		})
	}
}
