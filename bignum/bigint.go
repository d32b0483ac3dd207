// Package bignum implements arbitrary-precision signed integers stored as
// base-10^9 limbs.
//
// A BigInt is a value type. Limb slices are never written after a value is
// constructed, so copies of a BigInt may share storage: every operation,
// including the in-place *Assign family, builds a fresh limb slice and
// swaps it in.
//
// Zero is always tagged Positive. Negate leaves zero unchanged.
package bignum

import "math"

// Sign tags the sign of a BigInt.
type Sign uint8

const (
	// Positive is the sign of zero and of every value greater than zero.
	Positive Sign = iota
	// Negative is the sign of every value less than zero.
	Negative
)

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "?"
	}
}

// BigInt represents a big signed integer.
//
// The zero value is a ready to use zero.
type BigInt struct {
	sign Sign
	// limbs are base-10^9 little-endian (limbs[0] is least significant).
	//
	// Canonical zero is [0]; a nil slice is read the same way.
	limbs []uint32
}

// newBigInt normalizes limbs and resets the sign of zero.
func newBigInt(sign Sign, limbs []uint32) BigInt {
	limbs = trimLimbs(limbs)
	if isZeroMag(limbs) {
		sign = Positive
	}
	return BigInt{sign: sign, limbs: limbs}
}

// mag returns the magnitude of x. The result must not be modified.
func (x BigInt) mag() []uint32 {
	if len(x.limbs) == 0 {
		return zeroMag
	}
	return x.limbs
}

// Zero returns a zero BigInt.
func Zero() BigInt { return BigInt{limbs: []uint32{0}} }

// FromUint64 creates a BigInt from a uint64.
func FromUint64(v uint64) BigInt {
	limbs := make([]uint32, 0, 3)
	for {
		limbs = append(limbs, uint32(v%Radix)) //nolint:gosec // G115: v%Radix < 2^30.
		v /= Radix
		if v == 0 {
			break
		}
	}
	return newBigInt(Positive, limbs)
}

// FromInt64 creates a BigInt from an int64.
func FromInt64(v int64) BigInt {
	if v >= 0 {
		return FromUint64(uint64(v))
	}
	// v < 0
	u := uint64(-(v + 1)) //nolint:gosec // G115: -(v+1) is non-negative and fits in uint64 here.
	u++
	x := FromUint64(u)
	x.sign = Negative
	return x
}

// IsPositive reports whether x >= 0. Zero reports positive.
func (x BigInt) IsPositive() bool { return x.Sign() == Positive }

// IsNegative reports whether x < 0.
func (x BigInt) IsNegative() bool { return x.Sign() == Negative }

// IsZero reports whether x == 0.
func (x BigInt) IsZero() bool { return isZeroMag(x.limbs) }

// Sign returns the sign tag of x.
func (x BigInt) Sign() Sign {
	if x.IsZero() {
		return Positive
	}
	return x.sign
}

// Len returns the number of limbs in x.
func (x BigInt) Len() int { return len(x.mag()) }

// Limbs returns a copy of the magnitude limbs, least significant first.
func (x BigInt) Limbs() []uint32 { return cloneLimbs(x.mag()) }

// Abs returns |x|.
func (x BigInt) Abs() BigInt { return BigInt{limbs: x.mag()} }

// Clone returns a copy of x with its own limb storage.
func (x BigInt) Clone() BigInt { return BigInt{sign: x.Sign(), limbs: cloneLimbs(x.mag())} }

// Negated returns -x.
func (x BigInt) Negated() BigInt {
	x.Negate()
	return x
}

// Negate flips the sign of z in place. Zero stays positive.
func (z *BigInt) Negate() {
	if z.IsZero() {
		z.sign = Positive
		return
	}
	if z.sign == Positive {
		z.sign = Negative
	} else {
		z.sign = Positive
	}
}

// Int64 converts x to int64 if it fits.
func (x BigInt) Int64() (int64, bool) {
	m := x.mag()
	if len(m) > 3 {
		return 0, false
	}
	var mag uint64
	for i := len(m) - 1; i >= 0; i-- {
		if mag > (math.MaxUint64-uint64(m[i]))/Radix {
			return 0, false
		}
		mag = mag*Radix + uint64(m[i])
	}
	if x.IsPositive() {
		if mag > math.MaxInt64 {
			return 0, false
		}
		return int64(mag), true
	}
	// Negative: allow magnitude up to 2^63.
	if mag > math.MaxInt64+1 {
		return 0, false
	}
	if mag == math.MaxInt64+1 {
		return math.MinInt64, true
	}
	return -int64(mag), true //nolint:gosec // G115: mag <= MaxInt64 here.
}

// AddAssign sets z = z + y.
func (z *BigInt) AddAssign(y BigInt) { *z = Add(*z, y) }

// SubAssign sets z = z - y.
func (z *BigInt) SubAssign(y BigInt) { *z = Sub(*z, y) }

// MulAssign sets z = z * y.
func (z *BigInt) MulAssign(y BigInt) { *z = Mul(*z, y) }

// DivAssign sets z to the truncated quotient z / y.
// z is left unchanged when y is zero.
func (z *BigInt) DivAssign(y BigInt) error {
	q, err := Div(*z, y)
	if err != nil {
		return err
	}
	*z = q
	return nil
}

// RemAssign sets z to the truncated remainder z % y, which carries the sign
// of z. z is left unchanged when y is zero.
func (z *BigInt) RemAssign(y BigInt) error {
	r, err := Rem(*z, y)
	if err != nil {
		return err
	}
	*z = r
	return nil
}

// ModAssign sets z to the Euclidean modulus of z by y, in [0, |y|).
// z is left unchanged when y is zero.
func (z *BigInt) ModAssign(y BigInt) error {
	m, err := Mod(*z, y)
	if err != nil {
		return err
	}
	*z = m
	return nil
}
