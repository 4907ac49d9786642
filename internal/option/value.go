package option

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which scalar a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNull
	KindFloat
	KindInt
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a loosely typed scalar parsed from an option string. The zero
// Value is the empty string.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// StringValue creates a string value
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BoolValue creates a boolean value
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Null returns the absent value
func Null() Value { return Value{kind: KindNull} }

// FloatValue creates a float value
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// IntValue creates an integer value
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// Kind returns the kind of scalar held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the absent value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v and whether v is a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer held by v and whether v is an integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the float held by v and whether v is a float.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the text held by v and whether v is a string.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Interface returns v as a plain Go value: bool, nil, float64, int64 or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNull:
		return nil
	case KindFloat:
		return v.f
	case KindInt:
		return v.i
	default:
		return v.s
	}
}

// String renders v the way it would be written as a literal: True, None,
// 2.5, 3 or "text".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindNull:
		return "None"
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return strconv.Quote(v.s)
	}
}

// Equal reports whether v and other hold the same kind and scalar.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindNull:
		return true
	case KindFloat:
		return v.f == other.f
	case KindInt:
		return v.i == other.i
	default:
		return v.s == other.s
	}
}
