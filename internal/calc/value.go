package calc

import (
	"strconv"

	"bigcalc/bignum"
)

// Kind is the dynamic type of a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
)

func (k Kind) String() string {
	if k == KindBool {
		return "bool"
	}
	return "int"
}

// Value is the result of evaluating an expression: an integer, or a
// boolean produced by a comparison.
type Value struct {
	kind Kind
	n    bignum.BigInt
	b    bool
}

// IntValue wraps n.
func IntValue(n bignum.BigInt) Value { return Value{kind: KindInt, n: n} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind { return v.kind }

// Int returns the integer and true when v holds one.
func (v Value) Int() (bignum.BigInt, bool) {
	if v.kind != KindInt {
		return bignum.Zero(), false
	}
	return v.n, true
}

// Bool returns the boolean and true when v holds one.
func (v Value) Bool() (b, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) String() string {
	if v.kind == KindBool {
		return strconv.FormatBool(v.b)
	}
	return v.n.String()
}
