package bignum

// addMag returns a+b.
func addMag(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint32, len(a)+1)
	var carry uint32
	for i := range a {
		// a[i], b[i] < Radix, so the sum stays below 2^31.
		s := a[i] + carry
		if i < len(b) {
			s += b[i]
		}
		if s >= Radix {
			s -= Radix
			carry = 1
		} else {
			carry = 0
		}
		out[i] = s
	}
	out[len(a)] = carry
	return trimLimbs(out)
}

// subMag returns a-b. It panics unless a >= b.
func subMag(a, b []uint32) []uint32 {
	if cmpMag(a, b) < 0 {
		violated("subtractSmaller", "minuend is smaller than subtrahend")
	}
	out := make([]uint32, len(a))
	var borrow uint32
	for i := range a {
		d := int64(a[i]) - int64(borrow)
		if i < len(b) {
			d -= int64(b[i])
		}
		if d < 0 {
			d += Radix
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(d) //nolint:gosec // G115: 0 <= d < Radix.
	}
	return trimLimbs(out)
}

func requireNonNegative(op string, a, b BigInt) {
	if a.IsNegative() || b.IsNegative() {
		violated(op, "operands must be non-negative, got %s and %s", a, b)
	}
}

// addUnsigned returns a+b for non-negative a and b.
func addUnsigned(a, b BigInt) BigInt {
	requireNonNegative("addUnsigned", a, b)
	return newBigInt(Positive, addMag(a.mag(), b.mag()))
}

// subtractSmaller returns a-b for a >= b >= 0.
func subtractSmaller(a, b BigInt) BigInt {
	requireNonNegative("subtractSmaller", a, b)
	return newBigInt(Positive, subMag(a.mag(), b.mag()))
}

// subtractUnsigned returns a-b for non-negative a and b. The result is
// negative when b > a.
func subtractUnsigned(a, b BigInt) BigInt {
	requireNonNegative("subtractUnsigned", a, b)
	if cmpMag(a.mag(), b.mag()) >= 0 {
		return subtractSmaller(a, b)
	}
	d := subtractSmaller(b, a)
	d.Negate()
	return d
}

// Add returns x+y.
func Add(x, y BigInt) BigInt {
	switch {
	case x.IsPositive() && y.IsPositive():
		return addUnsigned(x, y)
	case x.IsNegative() && y.IsNegative():
		// (-a) + (-b) = -(a+b)
		s := addUnsigned(x.Abs(), y.Abs())
		s.Negate()
		return s
	case x.IsPositive():
		// a + (-b) = a - b
		return subtractUnsigned(x, y.Abs())
	default:
		// (-a) + b = b - a
		return subtractUnsigned(y, x.Abs())
	}
}

// Sub returns x-y.
func Sub(x, y BigInt) BigInt {
	switch {
	case x.IsPositive() && y.IsPositive():
		return subtractUnsigned(x, y)
	case x.IsNegative() && y.IsNegative():
		// (-a) - (-b) = b - a
		return subtractUnsigned(y.Abs(), x.Abs())
	case x.IsPositive():
		// a - (-b) = a + b
		return addUnsigned(x, y.Abs())
	default:
		// (-a) - b = -(a+b)
		s := addUnsigned(x.Abs(), y)
		s.Negate()
		return s
	}
}
