package config

import (
	"errors"
	"fmt"
	"strings"
)

// maxInterpolationDepth bounds nested %(key)s references.
const maxInterpolationDepth = 10

var (
	// ErrInterpolation is matched by every *InterpolationError.
	ErrInterpolation = errors.New("bad interpolation")
	// ErrMissingReference is returned when %(key)s names no key with a value.
	ErrMissingReference = errors.New("reference to missing key")
	// ErrBadReference is returned when '%' is not followed by '%' or '(key)s'.
	ErrBadReference = errors.New("bad interpolation syntax")
	// ErrInterpolationDepth is returned when references nest too deeply.
	ErrInterpolationDepth = errors.New("interpolation too deep")
)

// InterpolationError reports a value of the [plugins] section that could
// not be expanded.
type InterpolationError struct {
	Key   string
	Value string
	Err   error
}

func (e *InterpolationError) Error() string {
	return fmt.Sprintf("interpolate %s = %s: %v", e.Key, e.Value, e.Err)
}

func (e *InterpolationError) Unwrap() []error {
	return []error{ErrInterpolation, e.Err}
}

// interpolate expands value the way configparser's basic interpolation
// does: "%%" is a literal '%' and "%(name)s" is replaced by the value of
// name, looked up case-insensitively in vars and expanded recursively.
// A nil entry in vars is a key without a value.
func interpolate(value string, vars map[string]*string) (string, error) {
	var b strings.Builder
	if err := expand(&b, value, vars, 1); err != nil {
		return "", err
	}
	return b.String(), nil
}

func expand(b *strings.Builder, rest string, vars map[string]*string, depth int) error {
	if depth > maxInterpolationDepth {
		return fmt.Errorf("%w: more than %d levels", ErrInterpolationDepth, maxInterpolationDepth)
	}
	for rest != "" {
		before, after, found := strings.Cut(rest, "%")
		b.WriteString(before)
		if !found {
			return nil
		}
		switch {
		case strings.HasPrefix(after, "%"):
			b.WriteByte('%')
			rest = after[1:]
		case strings.HasPrefix(after, "("):
			name, tail, ok := strings.Cut(after[1:], ")")
			if !ok || name == "" || !strings.HasPrefix(tail, "s") {
				return fmt.Errorf("%w: bad variable reference %q", ErrBadReference, "%"+after)
			}
			v := vars[strings.ToLower(name)]
			if v == nil {
				return fmt.Errorf("%w: %s", ErrMissingReference, name)
			}
			if strings.Contains(*v, "%") {
				if err := expand(b, *v, vars, depth+1); err != nil {
					return err
				}
			} else {
				b.WriteString(*v)
			}
			rest = tail[1:]
		default:
			return fmt.Errorf("%w: '%%' must be followed by '%%' or '(', found %q", ErrBadReference, "%"+after)
		}
	}
	return nil
}
