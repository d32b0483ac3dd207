package calc

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"bigcalc/bignum"
	"bigcalc/internal/trace"
)

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"10 - 4 - 3", "3"},
		{"2 - - 3", "5"},
		{"+5", "5"},
		{"-(-(7))", "7"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"-7 mod 2", "1"},
		{"7 mod -2", "1"},
		{"7mod3", "1"},
		{"1_000_000_000 * 1_000_000_000", "1000000000000000000"},
		{"999999999 + 1", "1000000000"},
		{"0 - 0", "0"},
		{"-0", "0"},
		{"１２ ＋ ３", "15"},
		{"  42\t", "42"},
	}
	for _, tc := range cases {
		v, err := Eval(context.Background(), tc.src)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tc.src, err)
		}
		if got := v.String(); got != tc.want {
			t.Fatalf("Eval(%q) = %s, want %s", tc.src, got, tc.want)
		}
		if v.Kind() != KindInt {
			t.Fatalf("Eval(%q) kind = %v", tc.src, v.Kind())
		}
	}
}

func TestEvalComparisons(t *testing.T) {
	cases := map[string]bool{
		"3 < 4":                        true,
		"4 < 3":                        false,
		"-5 > -6":                      true,
		"2 * 3 == 6":                   true,
		"6 != 6":                       false,
		"123456789012 <= 123456789012": true,
		"-1 >= 0":                      false,
	}
	for src, want := range cases {
		v, err := Eval(context.Background(), src)
		if err != nil {
			t.Fatalf("Eval(%q): %v", src, err)
		}
		got, ok := v.Bool()
		if !ok || got != want {
			t.Fatalf("Eval(%q) = %v, want %v", src, v, want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		src  string
		pos  int
		kind error
	}{
		{"1 / 0", 2, bignum.ErrDivByZero},
		{"5 % (3 - 3)", 2, bignum.ErrDivByZero},
		{"5 mod 0", 2, bignum.ErrDivByZero},
		{"1 +", 3, ErrSyntax},
		{"(1 + 2", 0, ErrSyntax},
		{"1 + 2)", 5, ErrSyntax},
		{"1 $ 2", 2, ErrSyntax},
		{"1__0", 0, ErrSyntax},
		{"10_", 0, ErrSyntax},
		{"modx", 0, ErrSyntax},
		{"", 0, ErrSyntax},
		{"1 < 2 < 3", 6, ErrSyntax},
		{"(1 < 2) + 1", 8, ErrType},
		{"-(1 < 2)", 0, ErrType},
	}
	for _, tc := range cases {
		_, err := Eval(context.Background(), tc.src)
		if err == nil {
			t.Fatalf("Eval(%q) succeeded", tc.src)
		}
		if !errors.Is(err, tc.kind) {
			t.Fatalf("Eval(%q) error %v, want %v", tc.src, err, tc.kind)
		}
		var ce *Error
		if !errors.As(err, &ce) {
			t.Fatalf("Eval(%q) error %T is not *Error", tc.src, err)
		}
		if ce.Pos != tc.pos {
			t.Fatalf("Eval(%q) pos = %d, want %d (%v)", tc.src, ce.Pos, tc.pos, err)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := Eval(context.Background(), "1 / 0")
	if err == nil || err.Error() != "column 3: division by zero" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvalNestingLimit(t *testing.T) {
	src := strings.Repeat("(", 2*maxNesting) + "1" + strings.Repeat(")", 2*maxNesting)
	if _, err := Eval(context.Background(), src); !errors.Is(err, ErrSyntax) {
		t.Fatalf("deep nesting: %v", err)
	}
	src = strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)
	if v, err := Eval(context.Background(), src); err != nil || v.String() != "1" {
		t.Fatalf("moderate nesting: %v, %v", v, err)
	}
}

func TestEvalLargeOperands(t *testing.T) {
	a := strings.Repeat("987654321", 80)
	b := "-" + strings.Repeat("123456789", 75)
	got, err := EvalInt(context.Background(), a+" * ("+b+") + "+a+" / 7")
	if err != nil {
		t.Fatal(err)
	}

	x, _ := new(big.Int).SetString(a, 10)
	y, _ := new(big.Int).SetString(b, 10)
	want := new(big.Int).Mul(x, y)
	want.Add(want, new(big.Int).Quo(x, big.NewInt(7)))
	if got.String() != want.String() {
		t.Fatalf("mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestEvalIntRejectsBool(t *testing.T) {
	if _, err := EvalInt(context.Background(), "1 < 2"); !errors.Is(err, ErrType) {
		t.Fatalf("EvalInt(1 < 2) = %v", err)
	}
}

func TestEvalCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Eval(ctx, "1 + 1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Eval on canceled ctx = %v", err)
	}
}

func TestEvalTracesOps(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Eval(ctx, "2 * 3 + 1"); err != nil {
		t.Fatal(err)
	}

	events := ring.Snapshot()
	var names []string
	var evalID uint64
	for _, ev := range events {
		if ev.Kind == trace.KindSpanBegin && ev.Name == "eval" {
			evalID = ev.SpanID
		}
		if ev.Kind == trace.KindSpanEnd {
			names = append(names, ev.Name)
		}
	}
	if strings.Join(names, ",") != "mul,add,eval" {
		t.Fatalf("span end order = %v", names)
	}
	for _, ev := range events {
		if ev.Scope != trace.ScopeOp || ev.Kind != trace.KindSpanEnd {
			continue
		}
		if ev.ParentID != evalID {
			t.Fatalf("%s parent = %d, want %d", ev.Name, ev.ParentID, evalID)
		}
		if ev.Name == "mul" && ev.Extra["algo"] != "schoolbook" {
			t.Fatalf("mul algo = %q", ev.Extra["algo"])
		}
	}
}

func TestEvalTraceExprLevelSkipsOps(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelExpr)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Eval(ctx, "1 / 0"); err == nil {
		t.Fatal("expected error")
	}
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeOp {
			t.Fatalf("op event at expr level: %+v", ev)
		}
	}
	var failed bool
	for _, ev := range ring.Snapshot() {
		failed = failed || ev.Kind == trace.KindFailure
	}
	if !failed {
		t.Fatal("failure event missing")
	}
}

func TestMulAlgorithm(t *testing.T) {
	prev := bignum.SetKaratsubaThreshold(4)
	defer bignum.SetKaratsubaThreshold(prev)

	small := bignum.MustParse("12345")
	wide := bignum.MustParse(strings.Repeat("9", 9*6))
	if got := MulAlgorithm(small, wide); got != "schoolbook" {
		t.Fatalf("small*wide = %s", got)
	}
	if got := MulAlgorithm(wide, wide); got != "karatsuba" {
		t.Fatalf("wide*wide = %s", got)
	}
}

func TestLexTokens(t *testing.T) {
	toks, err := Lex("12 <= (3 mod 4)")
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenKind{TokNumber, TokLE, TokLParen, TokNumber, TokMod, TokNumber, TokRParen, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d = %v, want %v", i, toks[i].Kind, k)
		}
	}
}
