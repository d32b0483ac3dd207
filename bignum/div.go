package bignum

// divSmall returns u / d and u % d for a single-limb divisor 0 < d <= Radix.
func divSmall(u []uint32, d uint64) ([]uint32, uint64) {
	q := make([]uint32, len(u))
	var r uint64
	for i := len(u) - 1; i >= 0; i-- {
		cur := r*Radix + uint64(u[i])
		q[i] = uint32(cur / d) //nolint:gosec // G115: r < d, so the quotient fits a limb.
		r = cur % d
	}
	return trimLimbs(q), r
}

// mulSmall returns u*m spread over n limbs. The caller guarantees the
// product fits.
func mulSmall(u []uint32, m uint64, n int) []uint32 {
	out := make([]uint32, n)
	var carry uint64
	for i := range u {
		p := uint64(u[i])*m + carry
		out[i] = uint32(p % Radix) //nolint:gosec // G115: remainder < Radix.
		carry = p / Radix
	}
	if len(u) < n {
		out[len(u)] = uint32(carry) //nolint:gosec // G115: carry < Radix.
	}
	return out
}

// divModMag returns the quotient and remainder of u / v for a non-zero v.
func divModMag(u, v []uint32) (q, r []uint32) {
	if cmpMag(u, v) < 0 {
		return []uint32{0}, cloneLimbs(u)
	}
	if len(v) == 1 {
		q, rem := divSmall(u, uint64(v[0]))
		return q, []uint32{uint32(rem)} //nolint:gosec // G115: rem < v[0].
	}
	return divKnuth(u, v)
}

// divKnuth is long division over base-10^9 limbs, Knuth's algorithm D
// (TAOCP vol. 2, 4.3.1). It requires len(v) >= 2 and u >= v.
func divKnuth(u, v []uint32) (q, r []uint32) {
	n := len(v)
	m := len(u) - n

	// Scale both operands so the top divisor limb is at least Radix/2; the
	// quotient is unchanged and the remainder is scaled by d.
	d := uint64(Radix) / (uint64(v[n-1]) + 1)
	un := mulSmall(u, d, len(u)+1)
	vn := mulSmall(v, d, n)

	vTop, vNext := uint64(vn[n-1]), uint64(vn[n-2])
	q = make([]uint32, m+1)
	for j := m; j >= 0; j-- {
		num := uint64(un[j+n])*Radix + uint64(un[j+n-1])
		qhat, rhat := num/vTop, num%vTop
		for qhat >= Radix || qhat*vNext > rhat*Radix+uint64(un[j+n-2]) {
			qhat--
			rhat += vTop
			if rhat >= Radix {
				break
			}
		}

		// un[j:j+n+1] -= qhat * vn
		var carry uint64
		var borrow int64
		for i := range n {
			p := qhat*uint64(vn[i]) + carry
			carry = p / Radix
			t := int64(un[i+j]) - int64(p%Radix) - borrow //nolint:gosec // G115: both terms < Radix.
			if t < 0 {
				t += Radix
				borrow = 1
			} else {
				borrow = 0
			}
			un[i+j] = uint32(t) //nolint:gosec // G115: 0 <= t < Radix.
		}
		t := int64(un[j+n]) - int64(carry) - borrow //nolint:gosec // G115: carry <= Radix.

		if t < 0 {
			// qhat was one too large: add the divisor back.
			qhat--
			var c uint64
			for i := range n {
				s := uint64(un[i+j]) + uint64(vn[i]) + c
				un[i+j] = uint32(s % Radix) //nolint:gosec // G115: remainder < Radix.
				c = s / Radix
			}
			t += int64(c) //nolint:gosec // G115: c is 0 or 1.
		}
		un[j+n] = uint32(t) //nolint:gosec // G115: 0 <= t < Radix after correction.
		q[j] = uint32(qhat) //nolint:gosec // G115: qhat < Radix.
	}

	r, _ = divSmall(trimLimbs(un[:n]), d)
	return trimLimbs(q), r
}

// DivMod returns the truncated quotient and remainder of x / y, such that
// x = q*y + r, q rounds toward zero, r carries the sign of x and |r| < |y|.
func DivMod(x, y BigInt) (q, r BigInt, err error) {
	if y.IsZero() {
		return BigInt{}, BigInt{}, ErrDivByZero
	}
	qm, rm := divModMag(x.mag(), y.mag())
	return newBigInt(productSign(x, y), qm), newBigInt(x.Sign(), rm), nil
}

// Div returns the quotient x / y truncated toward zero.
func Div(x, y BigInt) (BigInt, error) {
	q, _, err := DivMod(x, y)
	return q, err
}

// Rem returns the truncated remainder x % y. It is negative when x is.
func Rem(x, y BigInt) (BigInt, error) {
	_, r, err := DivMod(x, y)
	return r, err
}

// Mod returns the Euclidean modulus of x by y, always in [0, |y|).
func Mod(x, y BigInt) (BigInt, error) {
	_, r, err := DivMod(x, y)
	if err != nil {
		return BigInt{}, err
	}
	if r.IsNegative() {
		r = Add(r, y.Abs())
	}
	return r, nil
}
