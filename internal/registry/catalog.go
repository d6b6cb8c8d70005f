package registry

const mochaToken = "XQAAgAD__________wANAV-FFWbg_rd8I__-9jAA"

func filter(name, description string, examples ...Example) Descriptor {
	return Descriptor{Kind: KindFilter, Name: name, Description: description, Examples: examples}
}

func function(name, description string, examples ...Example) Descriptor {
	return Descriptor{Kind: KindFunction, Name: name, Description: description, Examples: examples}
}

// piped builds a filter example. args alternate name and literal text.
func piped(input, output string, args ...string) Example {
	ex := call(output, args...)
	ex.Input = input
	return ex
}

// call builds a function example. args alternate name and literal text.
func call(output string, args ...string) Example {
	ex := Example{Output: output, Args: []Arg{}}
	for i := 0; i+1 < len(args); i += 2 {
		ex.Args = append(ex.Args, Arg{Name: args[i], Text: args[i+1]})
	}
	return ex
}

func filterTable() []Descriptor {
	return []Descriptor{
		filter("add",
			"Add to a colour channel. Named form: hue in degrees, saturation and lightness in percent, opacity as a fraction. Field form: field and amount in canonical units. Hue wraps, other channels clamp.",
			piped("red", "#d2460f", "hue", "30"),
			piped("red", "#dd0333", "saturation", "10"),
			piped("red", "#d2460f", "field", `"hue"`, "amount", "30"),
		),
		filter("sub",
			"Subtract from a colour channel. Takes the same arguments as add with every amount negated.",
			piped("red", "#d20f9a", "hue", "30"),
			piped("red", "#8e525f", "saturation", "60"),
			piped("red", "#8e525f", "field", `"saturation"`, "amount", "0.6"),
		),
		filter("mod",
			"Set a colour channel to an absolute value. Named form uses the units of add; field form takes field and target.",
			piped("red", "#f8a0b3", "lightness", "80"),
			piped("red", "#d20f3980", "opacity", "0.5"),
			piped("red", "#f8a0b3", "field", `"lightness"`, "target", "0.8"),
		),
		filter("mix",
			"Blend towards color by amount in [0,1]. Hue takes the shorter way round the wheel.",
			piped("red", "#c486dc", "color", "base", "amount", "0.5"),
			piped("red", "#d20f39", "color", "base", "amount", "0"),
			piped("red", "#eff1f5", "color", "base", "amount", "1"),
		),
		filter("trunc",
			"Truncate a number towards zero to places decimal places, without rounding.",
			piped("1.123456", "1.123", "places", "3"),
			piped("-2.789", "-2", "places", "0"),
		),
		filter("urlencode",
			"Serialize, compress and base64url encode any value into a URL-safe token.",
			piped(`"mocha"`, mochaToken),
		),
		filter("urldecode",
			"Decode a token produced by urlencode back into the original value.",
			piped(`"`+mochaToken+`"`, "mocha"),
		),
	}
}

func functionTable() []Descriptor {
	return []Descriptor{
		function("if",
			"Return t when cond is true and f otherwise. Both branches are evaluated before the call.",
			call("1", "cond", "true", "t", "1", "f", "0"),
			call("0", "cond", "false", "t", "1", "f", "0"),
			call("{a: 1, b: 2}", "cond", "true", "t", "some_object", "f", "null"),
		),
		function("object",
			"Build a mapping from the supplied arguments. Keys are sorted.",
			call("{a: 1, b: 2}", "b", "2", "a", "1"),
		),
		function("css_rgb",
			"Format a colour as rgb(r, g, b).",
			call("rgb(210, 15, 57)", "color", "red"),
		),
		function("css_rgba",
			"Format a colour as rgba(r, g, b, a).",
			call("rgba(210, 15, 57, 1.00)", "color", "red"),
		),
		function("css_hsl",
			"Format a colour as hsl(h, s%, l%).",
			call("hsl(347, 87%, 44%)", "color", "red"),
		),
		function("css_hsla",
			"Format a colour as hsla(h, s%, l%, a).",
			call("hsla(347, 87%, 44%, 1.00)", "color", "red"),
			call("hsla(220, 23%, 95%, 1.00)", "color", "base"),
		),
		function("urlencode",
			"Function form of the urlencode filter.",
			call(mochaToken, "value", `"mocha"`),
		),
	}
}
