package option

import (
	"errors"
	"strconv"
	"strings"
)

// Options holds the arguments parsed from a single option string.
type Options struct {
	// Positional holds the unkeyed values in the order they appeared.
	Positional []Value
	// Named maps each key to its value. A repeated key keeps its last value.
	Named map[string]Value
	// Keys lists the named keys in the order they first appeared.
	Keys []string
}

// Empty returns Options with no positional and no named values.
func Empty() Options {
	return Options{Named: map[string]Value{}}
}

// Len returns the total number of positional and named values.
func (o Options) Len() int {
	return len(o.Positional) + len(o.Named)
}

// Lookup returns the named value for key.
func (o Options) Lookup(key string) (Value, bool) {
	v, ok := o.Named[key]
	return v, ok
}

// Parse splits raw on ',' and coerces every part into a Value. Parts that
// contain '=' become named values keyed by the text before the first '='.
// An empty raw string is a single empty part and therefore produces one
// positional empty string; callers with no option text should use Empty.
func Parse(raw string) Options {
	opts := Empty()
	for _, part := range strings.Split(raw, ",") {
		key, text, keyed := strings.Cut(part, "=")
		if !keyed {
			text = part
		}
		val := Coerce(text)
		// An empty key is indistinguishable from no key at all.
		if !keyed || key == "" {
			opts.Positional = append(opts.Positional, val)
			continue
		}
		if _, seen := opts.Named[key]; !seen {
			opts.Keys = append(opts.Keys, key)
		}
		opts.Named[key] = val
	}
	return opts
}

// matcher attempts to coerce text into a Value.
type matcher func(text string) (Value, bool)

// matchers is tried in order; the string fallback always matches.
var matchers = []matcher{
	matchLiteral,
	matchNumber,
	matchString,
}

// Coerce converts a single value text into the first Value a matcher accepts.
func Coerce(text string) Value {
	for _, m := range matchers {
		if v, ok := m(text); ok {
			return v
		}
	}
	return StringValue(text)
}

func matchLiteral(text string) (Value, bool) {
	switch text {
	case "True":
		return BoolValue(true), true
	case "False":
		return BoolValue(false), true
	case "None":
		return Null(), true
	}
	return Value{}, false
}

// matchNumber parses text as a float when it contains a dot and as an
// integer otherwise. Text with a dot never becomes an integer.
func matchNumber(text string) (Value, bool) {
	if strings.Contains(text, ".") {
		f, ok := parseFloat(text)
		if !ok {
			return Value{}, false
		}
		return FloatValue(f), true
	}
	i, ok := parseInt(text)
	if !ok {
		return Value{}, false
	}
	return IntValue(i), true
}

func matchString(text string) (Value, bool) {
	return StringValue(text), true
}

func parseFloat(text string) (float64, bool) {
	digits, ok := stripUnderscores(strings.TrimSpace(text))
	if !ok || digits == "" {
		return 0, false
	}
	// Hexadecimal floats are not decimal literals.
	if strings.ContainsAny(digits, "xXpP") {
		return 0, false
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func parseInt(text string) (int64, bool) {
	digits, ok := stripUnderscores(strings.TrimSpace(text))
	if !ok || digits == "" {
		return 0, false
	}
	i, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// stripUnderscores removes single underscores placed between two digits, the
// way numeric literals allow digit grouping. Any other underscore makes the
// text invalid.
func stripUnderscores(text string) (string, bool) {
	if !strings.Contains(text, "_") {
		return text, true
	}
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '_' {
			b.WriteByte(c)
			continue
		}
		if i == 0 || i == len(text)-1 || !isDigit(text[i-1]) || !isDigit(text[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
