package property

import (
	"math"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
)

// Value is a normalized property: null, string, number or boolean.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	flag bool
}

// FlatRecord maps field names to normalized values.
type FlatRecord map[string]Value

func Null() Value                 { return Value{} }
func StringValue(s string) Value  { return Value{kind: ValueString, str: s} }
func NumberValue(n float64) Value { return Value{kind: ValueNumber, num: n} }
func BoolValue(b bool) Value      { return Value{kind: ValueBool, flag: b} }

func stringPtrValue(s *string) Value {
	if s == nil {
		return Null()
	}

	return StringValue(*s)
}

func numberPtrValue(n *float64) Value {
	if n == nil {
		return Null()
	}

	return NumberValue(*n)
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == ValueNull }

// Text renders the value the way it reads when concatenated into a list:
// null is empty, numbers use the shortest exact form.
func (v Value) Text() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return FormatNumber(v.num)
	case ValueBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// Float converts the value to a number. Null, empty and non-numeric text
// yield 0.
func (v Value) Float() float64 {
	switch v.kind {
	case ValueNumber:
		return v.num
	case ValueBool:
		if v.flag {
			return 1
		}

		return 0
	case ValueString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(n) {
			return 0
		}

		return n
	default:
		return 0
	}
}

// Truthy follows the usual loose truthiness: false, 0, "" and null are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case ValueBool:
		return v.flag
	case ValueNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case ValueString:
		return v.str != ""
	default:
		return false
	}
}

// Interface returns the value as a plain Go value for JSON encoding.
func (v Value) Interface() any {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return v.num
	case ValueBool:
		return v.flag
	default:
		return nil
	}
}

// FormatNumber prints integral values without a fraction.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
