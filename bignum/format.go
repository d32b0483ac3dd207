package bignum

import "strconv"

// appendDecimal appends the canonical decimal form of x: the top limb
// without leading zeros, every lower limb padded to nine digits, and a
// '-' for negative values.
func (x BigInt) appendDecimal(buf []byte) []byte {
	m := x.mag()
	if x.IsNegative() {
		buf = append(buf, '-')
	}
	buf = strconv.AppendUint(buf, uint64(m[len(m)-1]), 10)
	var group [limbDigits]byte
	for i := len(m) - 2; i >= 0; i-- {
		v := m[i]
		for k := limbDigits - 1; k >= 0; k-- {
			group[k] = byte('0' + v%10)
			v /= 10
		}
		buf = append(buf, group[:]...)
	}
	return buf
}

// String returns the canonical decimal representation of x.
func (x BigInt) String() string {
	return string(x.appendDecimal(make([]byte, 0, x.Len()*limbDigits+1)))
}

// AppendText implements encoding.TextAppender.
func (x BigInt) AppendText(b []byte) ([]byte, error) {
	return x.appendDecimal(b), nil
}

// MarshalText implements encoding.TextMarshaler.
func (x BigInt) MarshalText() ([]byte, error) {
	return x.AppendText(nil)
}
