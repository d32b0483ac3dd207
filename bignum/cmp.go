package bignum

// cmpMag compares two trimmed magnitudes: the longer one is larger, equal
// lengths are compared from the most significant limb down.
func cmpMag(a, b []uint32) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Cmp compares x and y and returns -1, 0 or +1.
//
// Sign decides first. Within a sign the magnitude order applies, reversed
// for negative operands.
func Cmp(x, y BigInt) int {
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs == Negative {
			return -1
		}
		return 1
	}
	c := cmpMag(x.mag(), y.mag())
	if xs == Negative {
		return -c
	}
	return c
}

// LessThan reports whether x < y.
func (x BigInt) LessThan(y BigInt) bool { return Cmp(x, y) < 0 }

// Equal reports whether x == y: same sign, same length, same limbs.
func (x BigInt) Equal(y BigInt) bool { return Cmp(x, y) == 0 }

// GreaterThan reports whether x > y.
func (x BigInt) GreaterThan(y BigInt) bool { return y.LessThan(x) }

// NotEqual reports whether x != y.
func (x BigInt) NotEqual(y BigInt) bool { return !x.Equal(y) }

// LessOrEqual reports whether x <= y.
func (x BigInt) LessOrEqual(y BigInt) bool { return !y.LessThan(x) }

// GreaterOrEqual reports whether x >= y.
func (x BigInt) GreaterOrEqual(y BigInt) bool { return !x.LessThan(y) }
