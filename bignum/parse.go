package bignum

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Parse converts decimal text to a BigInt.
//
// Surrounding whitespace is ignored. A single leading '-' makes the value
// negative and a leading '+' is accepted and ignored. Any other non-digit
// characters before the first or after the last digit are stripped; a
// non-digit between digits is an error, as is text without digits.
// "-0" parses to positive zero.
func Parse(s string) (BigInt, error) {
	body := strings.TrimSpace(s)
	sign := Positive
	if body != "" {
		switch body[0] {
		case '-':
			sign = Negative
			body = body[1:]
		case '+':
			body = body[1:]
		}
	}
	body = strings.TrimFunc(body, func(r rune) bool { return !isDigit(r) })
	if body == "" {
		return BigInt{}, fmt.Errorf("%w: no digits in %q", ErrParse, s)
	}
	for i := range len(body) {
		if body[i] < '0' || body[i] > '9' {
			return BigInt{}, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrParse, body[i], i, s)
		}
	}

	body = strings.TrimLeft(body, "0")
	if body == "" {
		return Zero(), nil
	}

	limbs := make([]uint32, 0, len(body)/limbDigits+1)
	for end := len(body); end > 0; end -= limbDigits {
		start := max(0, end-limbDigits)
		v, err := strconv.ParseUint(body[start:end], 10, 64)
		if err != nil {
			return BigInt{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		limb, err := safecast.Conv[uint32](v)
		if err != nil {
			return BigInt{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		limbs = append(limbs, limb)
	}
	return newBigInt(sign, limbs), nil
}

// MustParse is like Parse but panics on error. It is meant for literals.
func MustParse(s string) BigInt {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *BigInt) UnmarshalText(text []byte) error {
	x, err := Parse(string(text))
	if err != nil {
		return err
	}
	*z = x
	return nil
}
