package bignum

// Radix is the base of the limb representation.
const Radix = 1_000_000_000

// limbDigits is the number of decimal digits stored in one limb.
const limbDigits = 9

// zeroMag is the shared read-only magnitude of the zero value.
var zeroMag = []uint32{0}

// trimLimbs drops most significant zero limbs down to the single-limb
// floor. The result is never empty.
func trimLimbs(limbs []uint32) []uint32 {
	for len(limbs) > 1 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return []uint32{0}
	}
	return limbs
}

func isZeroMag(limbs []uint32) bool {
	for _, l := range limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

func cloneLimbs(limbs []uint32) []uint32 {
	out := make([]uint32, len(limbs))
	copy(out, limbs)
	return out
}

// shiftLeft returns x*Radix^k: k zero limbs are prepended.
func shiftLeft(x []uint32, k int) []uint32 {
	if isZeroMag(x) {
		return []uint32{0}
	}
	if k <= 0 {
		return cloneLimbs(x)
	}
	out := make([]uint32, len(x)+k)
	copy(out[k:], x)
	return out
}

// shiftRight returns x/Radix^k: the k least significant limbs are dropped.
func shiftRight(x []uint32, k int) []uint32 {
	if k <= 0 {
		return cloneLimbs(x)
	}
	if k >= len(x) {
		return []uint32{0}
	}
	return trimLimbs(cloneLimbs(x[k:]))
}

// cutOffRank truncates the k most significant limbs of x, keeping the
// len(x)-k least significant ones (x mod Radix^(len(x)-k)).
func cutOffRank(x []uint32, k int) []uint32 {
	if k <= 0 {
		return cloneLimbs(x)
	}
	if k >= len(x) {
		return []uint32{0}
	}
	return trimLimbs(cloneLimbs(x[:len(x)-k]))
}

// lowLimbs returns x mod Radix^k.
func lowLimbs(x []uint32, k int) []uint32 {
	if len(x) <= k {
		return cloneLimbs(x)
	}
	return cutOffRank(x, len(x)-k)
}
