package bignum

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

func toBig(t *testing.T, x BigInt) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		t.Fatalf("math/big rejected %q", x.String())
	}
	return b
}

func fromBig(t *testing.T, b *big.Int) BigInt {
	t.Helper()
	x, err := Parse(b.String())
	if err != nil {
		t.Fatalf("Parse(%q): %v", b.String(), err)
	}
	return x
}

// randInt returns a random value with up to n limbs. Limbs are biased
// towards 0 and Radix-1 to stress carry and borrow paths.
func randInt(rng *rand.Rand, n int) BigInt {
	limbs := make([]uint32, 1+rng.Intn(n))
	for i := range limbs {
		switch rng.Intn(4) {
		case 0:
			limbs[i] = 0
		case 1:
			limbs[i] = Radix - 1
		default:
			limbs[i] = uint32(rng.Int63n(Radix))
		}
	}
	sign := Positive
	if rng.Intn(2) == 0 {
		sign = Negative
	}
	return newBigInt(sign, limbs)
}

func repeatDigits(d string, n int) BigInt {
	return MustParse(strings.Repeat(d, n))
}
