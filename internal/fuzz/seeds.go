package fuzztests

import (
	"strings"
	"testing"
)

// maxFuzzInput caps input length so Karatsuba-sized operands stay quick.
const maxFuzzInput = 4 << 10

var literalSeeds = []string{
	"0", "-0", "+0", "1", "-1", "999999999", "1000000000", "-1000000000",
	"123456789012345678901234567890", "  42  ", "x17y", "--5", "1-2", "",
	strings.Repeat("9", 90), "-" + strings.Repeat("1", 200),
}

var exprSeeds = []string{
	"1 + 2 * 3", "(1 + 2) * 3", "-7 / 2", "-7 % 2", "-7 mod 2", "1 / 0",
	"1 < 2", "1 < 2 < 3", "((((1))))", "1_000 * 1_000", "１２ ＋ ３", "(", ")",
	strings.Repeat("9", 300) + " * " + strings.Repeat("8", 300),
}

func addLiteralSeeds(f *testing.F) {
	for _, s := range literalSeeds {
		f.Add(s)
	}
}

func addPairSeeds(f *testing.F) {
	for i, a := range literalSeeds {
		f.Add(a, literalSeeds[(i*7+3)%len(literalSeeds)])
	}
}

func addExprSeeds(f *testing.F) {
	for _, s := range exprSeeds {
		f.Add(s)
	}
}

func clip(s string) string {
	if len(s) > maxFuzzInput {
		return s[:maxFuzzInput]
	}
	return s
}
