package ops

import (
	"github.com/jmylchreest/tincture/internal/colour"
)

// channelChange is one channel edit requested by add, sub or mod, already
// converted to canonical units.
type channelChange struct {
	ch     colour.Channel
	amount float64
}

// channelArgs reads the channel edits of add, sub and mod. Two forms are
// accepted and must not be mixed:
//
//	field="saturation", amount=0.1   canonical units
//	saturation=10                    hue in degrees, saturation and
//	                                 lightness in percent, alpha as a fraction
//
// amountName is "amount" for add/sub and "target" for mod.
func channelArgs(args Args, amountName string) ([]channelChange, error) {
	if args.Has("field") {
		return fieldForm(args, amountName)
	}

	var changes []channelChange
	seen := make(map[colour.Channel]string)
	for _, name := range args.Names() {
		if name == amountName {
			return nil, &MissingArgumentError{Name: "field"}
		}
		ch, ok := colour.ParseChannel(name)
		if !ok {
			return nil, invalid(name, "unknown argument; expected a channel name or field")
		}
		if prev, dup := seen[ch]; dup {
			return nil, invalid(name, "same channel as %q", prev)
		}
		seen[ch] = name
		n, err := asNumber(name, args[name])
		if err != nil {
			return nil, err
		}
		changes = append(changes, channelChange{ch: ch, amount: fromDisplayUnits(ch, n)})
	}
	if len(changes) == 0 {
		return nil, &MissingArgumentError{Name: "field"}
	}
	return changes, nil
}

func fieldForm(args Args, amountName string) ([]channelChange, error) {
	field, err := args.String("field")
	if err != nil {
		return nil, err
	}
	ch, ok := colour.ParseChannel(field)
	if !ok {
		return nil, invalid("field", "unknown channel %q", field)
	}
	n, err := args.Number(amountName)
	if err != nil {
		return nil, err
	}
	if err := args.only("field", amountName); err != nil {
		return nil, err
	}
	return []channelChange{{ch: ch, amount: n}}, nil
}

// fromDisplayUnits converts a named-channel amount to canonical units.
func fromDisplayUnits(ch colour.Channel, n float64) float64 {
	switch ch {
	case colour.Saturation, colour.Lightness:
		return n / 100
	}
	return n
}
