package directive

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the semantic type of a directive value.
type Kind uint8

const (
	KindBool Kind = iota
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	}
	return "unknown"
}

// Value is a directive value of one of the three kinds.
// The zero Value is Bool(false).
type Value struct {
	kind Kind
	b    bool
	s    string
	n    float64
}

// Bool returns a boolean directive value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string directive value. The text is kept verbatim.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a numeric directive value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload; ok is false for other kinds.
func (v Value) AsBool() (b, ok bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string payload; ok is false for other kinds.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsNumber returns the numeric payload; ok is false for other kinds.
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// Interface returns the payload as a plain Go value (bool, string or float64),
// suitable for handing to the script runtime.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	default:
		return v.b
	}
}

// String renders the value the way the engine would print it.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	default:
		return strconv.FormatBool(v.b)
	}
}

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// FromAny converts a decoded configuration value to a Value. TOML scalars
// map to their kind; an array of strings becomes one comma-joined String,
// the form list directives such as predef take on the command line.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case float64:
		return Number(t), nil
	case []string:
		return String(strings.Join(t, ",")), nil
	case []any:
		items := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("list item %d: unsupported directive value %v (%T), want string", i, item, item)
			}
			items = append(items, s)
		}
		return String(strings.Join(items, ",")), nil
	}
	return Value{}, fmt.Errorf("unsupported directive value %v (%T)", x, x)
}
