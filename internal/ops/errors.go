package ops

import "fmt"

// MissingArgumentError reports a required argument that was not supplied.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %q", e.Name)
}

// TypeMismatchError reports an argument of the wrong kind.
type TypeMismatchError struct {
	Name     string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("argument %q must be a %s", e.Name, e.Expected)
	}
	return fmt.Sprintf("argument %q must be a %s, got %s", e.Name, e.Expected, e.Got)
}

// InvalidArgumentError reports an argument of the right kind but an
// unacceptable value.
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

func invalid(name, format string, args ...any) error {
	return &InvalidArgumentError{Name: name, Reason: fmt.Sprintf(format, args...)}
}
