package bignum

// maxKaratsubaDepth bounds the recursion; deeper splits fall back to
// schoolbook multiplication.
const maxKaratsubaDepth = 48

// karatsuba returns x*y for magnitudes x and y.
//
// With k = max(len(x), len(y))/2, x = a*R^k + b and y = c*R^k + d:
//
//	x*y = ac*R^2k + ((a+b)(c+d) - ac - bd)*R^k + bd
func karatsuba(x, y []uint32, threshold, depth int) []uint32 {
	if len(x) <= threshold || len(y) <= threshold || depth >= maxKaratsubaDepth {
		return mulSchoolbook(x, y)
	}

	k := max(len(x), len(y)) / 2
	a, b := shiftRight(x, k), lowLimbs(x, k)
	c, d := shiftRight(y, k), lowLimbs(y, k)

	ac := karatsuba(a, c, threshold, depth+1)
	bd := karatsuba(b, d, threshold, depth+1)
	abcd := karatsuba(addMag(a, b), addMag(c, d), threshold, depth+1)

	mid := subMag(subMag(abcd, ac), bd)
	return addMag(addMag(shiftLeft(ac, 2*k), shiftLeft(mid, k)), bd)
}
