package bignum

import "sync/atomic"

// DefaultKaratsubaThreshold is the operand length, in limbs, above which Mul
// switches from schoolbook to Karatsuba multiplication.
const DefaultKaratsubaThreshold = 32

// minKaratsubaThreshold keeps every Karatsuba split strictly shrinking.
const minKaratsubaThreshold = 4

var karatsubaThreshold atomic.Int64

func init() {
	karatsubaThreshold.Store(DefaultKaratsubaThreshold)
}

// KaratsubaThreshold returns the process-wide Karatsuba threshold.
func KaratsubaThreshold() int { return int(karatsubaThreshold.Load()) }

// SetKaratsubaThreshold sets the process-wide Karatsuba threshold and returns
// the previous one. Values below 4 are raised to 4.
func SetKaratsubaThreshold(n int) int {
	return int(karatsubaThreshold.Swap(int64(clampThreshold(n))))
}

func clampThreshold(n int) int {
	return max(n, minKaratsubaThreshold)
}

// mulSchoolbook returns a*b by long multiplication.
func mulSchoolbook(a, b []uint32) []uint32 {
	if isZeroMag(a) || isZeroMag(b) {
		return []uint32{0}
	}
	out := make([]uint32, len(a)+len(b)+1)
	for i, bi := range b {
		if bi == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < len(a) || carry != 0; j++ {
			// out < Radix, a*b < Radix^2 and carry < 2*Radix keep cur below 2^60.
			cur := uint64(out[i+j]) + carry
			if j < len(a) {
				cur += uint64(a[j]) * uint64(bi)
			}
			out[i+j] = uint32(cur % Radix) //nolint:gosec // G115: remainder < Radix.
			carry = cur / Radix
		}
	}
	return trimLimbs(out)
}

// mulMag multiplies magnitudes, picking the algorithm by threshold.
func mulMag(a, b []uint32, threshold int) []uint32 {
	if len(a) > threshold && len(b) > threshold {
		return karatsuba(a, b, threshold, 0)
	}
	return mulSchoolbook(a, b)
}

func productSign(x, y BigInt) Sign {
	if x.Sign() == y.Sign() {
		return Positive
	}
	return Negative
}

// Mul returns x*y.
func Mul(x, y BigInt) BigInt {
	return newBigInt(productSign(x, y), mulMag(x.mag(), y.mag(), KaratsubaThreshold()))
}

// MulSchoolbook returns x*y computed by schoolbook multiplication only.
func MulSchoolbook(x, y BigInt) BigInt {
	return newBigInt(productSign(x, y), mulSchoolbook(x.mag(), y.mag()))
}

// MulKaratsuba returns x*y computed by Karatsuba multiplication, recursing
// while both halves are longer than threshold limbs.
func MulKaratsuba(x, y BigInt, threshold int) BigInt {
	return newBigInt(productSign(x, y), karatsuba(x.mag(), y.mag(), clampThreshold(threshold), 0))
}
