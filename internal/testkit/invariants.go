// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"
	"math/big"

	"fortio.org/safecast"

	"bigcalc/bignum"
)

// CheckInvariants verifies the canonical form of x:
// 1) at least one limb, every limb below the radix
// 2) no most-significant zero limb unless x is exactly [0]
// 3) zero carries the positive sign
func CheckInvariants(x bignum.BigInt) error {
	limbs := x.Limbs()
	if len(limbs) == 0 {
		return fmt.Errorf("empty limb sequence")
	}
	if len(limbs) != x.Len() {
		return fmt.Errorf("Len() = %d but %d limbs", x.Len(), len(limbs))
	}
	for i, l := range limbs {
		if l >= bignum.Radix {
			return fmt.Errorf("limb %d = %d exceeds radix", i, l)
		}
	}
	if top := limbs[len(limbs)-1]; top == 0 && len(limbs) > 1 {
		return fmt.Errorf("leading zero limb in %d-limb value", len(limbs))
	}
	if x.IsZero() && x.IsNegative() {
		return fmt.Errorf("negative zero")
	}
	return nil
}

// CheckDivision verifies the truncating division identity for q, r = x / y:
// x == q*y + r, |r| < |y|, and r is zero or has the sign of x.
func CheckDivision(x, y, q, r bignum.BigInt) error {
	for _, v := range []bignum.BigInt{q, r} {
		if err := CheckInvariants(v); err != nil {
			return err
		}
	}
	if got := bignum.Add(bignum.Mul(q, y), r); !got.Equal(x) {
		return fmt.Errorf("q*y + r = %s, want %s", got, x)
	}
	if !r.Abs().LessThan(y.Abs()) {
		return fmt.Errorf("|r| = %s not below |y| = %s", r.Abs(), y.Abs())
	}
	if !r.IsZero() && r.Sign() != x.Sign() {
		return fmt.Errorf("remainder %s has sign opposite to dividend %s", r, x)
	}
	return nil
}

// ToBig converts x to math/big through its limbs, independently of String.
func ToBig(x bignum.BigInt) (*big.Int, error) {
	out := new(big.Int)
	radix := big.NewInt(bignum.Radix)
	limbs := x.Limbs()
	for i := len(limbs) - 1; i >= 0; i-- {
		l, err := safecast.Conv[int64](limbs[i])
		if err != nil {
			return nil, err
		}
		out.Mul(out, radix)
		out.Add(out, big.NewInt(l))
	}
	if x.IsNegative() {
		out.Neg(out)
	}
	return out, nil
}
