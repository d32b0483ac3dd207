package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/bignum"
	"bigcalc/internal/calc"
)

func TestReadExprs(t *testing.T) {
	src := "1+1\n\n# comment\n  2*3  # trailing\n\t\n-5 mod 3"
	got, err := ReadExprs(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []Expr{{Line: 1, Text: "1+1"}, {Line: 4, Text: "2*3"}, {Line: 6, Text: "-5 mod 3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ReadExprs mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	if err := os.WriteFile(path, []byte("7 * 6\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil || len(got) != 1 || got[0].Text != "7 * 6" {
		t.Fatalf("ReadFile = %v, %v", got, err)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}
}

func squares(n int) []Expr {
	exprs := make([]Expr, n)
	for i := range n {
		exprs[i] = Expr{Line: i + 1, Text: fmt.Sprintf("%d * %d", i, i)}
	}
	return exprs
}

func TestRunPreservesOrder(t *testing.T) {
	exprs := squares(60)
	res, err := Run(context.Background(), Request{Exprs: exprs, Jobs: 8})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != len(exprs) || res.Failed != 0 {
		t.Fatalf("lines=%d failed=%d", len(res.Lines), res.Failed)
	}
	for i, line := range res.Lines {
		if line.Line != i+1 || line.Value != fmt.Sprint(i*i) {
			t.Fatalf("line %d = %+v", i, line)
		}
		if line.Kind != calc.KindInt || line.Limbs != 1 {
			t.Fatalf("line %d kind=%v limbs=%d", i, line.Kind, line.Limbs)
		}
	}
}

func TestRunRecordsLineErrors(t *testing.T) {
	exprs := []Expr{{Line: 1, Text: "1 / 0"}, {Line: 2, Text: "2 + 2"}, {Line: 5, Text: "(("}}
	res, err := Run(context.Background(), Request{Exprs: exprs, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed != 2 {
		t.Fatalf("failed = %d, want 2", res.Failed)
	}
	if !errors.Is(res.Lines[0].Err, bignum.ErrDivByZero) {
		t.Fatalf("line 1 err = %v", res.Lines[0].Err)
	}
	if !strings.HasPrefix(res.Lines[0].Err.Error(), "line 1: ") {
		t.Fatalf("line 1 message = %q", res.Lines[0].Err)
	}
	if res.Lines[1].Value != "4" || res.Lines[1].Err != nil {
		t.Fatalf("line 2 = %+v", res.Lines[1])
	}
	if !errors.Is(res.Lines[2].Err, calc.ErrSyntax) {
		t.Fatalf("line 5 err = %v", res.Lines[2].Err)
	}
}

func TestRunUsesCache(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exprs := []Expr{
		{Line: 1, Text: "123456789123456789 * 987654321987654321"},
		{Line: 2, Text: "1 < 2"},
		{Line: 3, Text: "1 / 0"},
	}

	first, err := Run(context.Background(), Request{Exprs: exprs, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHits != 0 {
		t.Fatalf("cold run hits = %d", first.CacheHits)
	}

	second, err := Run(context.Background(), Request{Exprs: exprs, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheHits != 2 || second.Failed != 1 {
		t.Fatalf("warm run hits=%d failed=%d", second.CacheHits, second.Failed)
	}
	for i := range 2 {
		a, b := first.Lines[i], second.Lines[i]
		if !b.Cached || a.Value != b.Value || a.Kind != b.Kind || a.Limbs != b.Limbs {
			t.Fatalf("line %d: cold %+v warm %+v", i+1, a, b)
		}
	}
	if second.Lines[1].Kind != calc.KindBool || second.Lines[1].Value != "true" {
		t.Fatalf("cached comparison = %+v", second.Lines[1])
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor("2 * 21")
	var out Payload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("empty cache Get = %v, %v", ok, err)
	}

	in := Payload{Expr: "2 * 21", Kind: uint8(calc.KindInt), Value: "42", Limbs: 1}
	if err := cache.Put(key, &in); err != nil {
		t.Fatal(err)
	}
	if ok, err := cache.Get(key, &out); !ok || err != nil {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	in.Schema = cacheSchemaVersion
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatal("entry survived DropAll")
	}
	if _, err := os.Stat(cache.Dir()); err != nil {
		t.Fatalf("cache dir after DropAll: %v", err)
	}
}

func TestDiskCacheIgnoresOldSchema(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor("1 + 1")
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := msgpack.Marshal(&Payload{Schema: cacheSchemaVersion + 1, Value: "2"})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	var out Payload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("Get on foreign schema = %v, %v", ok, err)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(KeyFor("1"), &Payload{}); err != nil {
		t.Fatal(err)
	}
	var out Payload
	if ok, err := cache.Get(KeyFor("1"), &out); ok || err != nil {
		t.Fatalf("nil Get = %v, %v", ok, err)
	}
}

func TestKeyForNormalizes(t *testing.T) {
	if KeyFor("１ + 1") != KeyFor("  1 + 1 ") {
		t.Fatal("full-width and padded forms hash differently")
	}
	if KeyFor("1 + 1") == KeyFor("1 + 2") {
		t.Fatal("distinct expressions share a key")
	}
}

func TestProgressEvents(t *testing.T) {
	exprs := append(squares(10), Expr{Line: 11, Text: "1 / 0"})
	ch := make(chan Event, 3*len(exprs))
	if _, err := Run(context.Background(), Request{Exprs: exprs, Jobs: 3, Progress: ChannelSink{Ch: ch}}); err != nil {
		t.Fatal(err)
	}
	close(ch)

	counts := map[Status]int{}
	for ev := range ch {
		counts[ev.Status]++
		if ev.Status == StatusError && ev.Line != 11 {
			t.Fatalf("error event on line %d", ev.Line)
		}
	}
	want := map[Status]int{StatusQueued: 11, StatusWorking: 11, StatusDone: 10, StatusError: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("event counts (-want +got):\n%s", diff)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Request{Exprs: squares(5)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run on canceled ctx = %v", err)
	}
}

func TestRunEmpty(t *testing.T) {
	res, err := Run(context.Background(), Request{})
	if err != nil || len(res.Lines) != 0 {
		t.Fatalf("empty run = %+v, %v", res, err)
	}
}

func TestChannelSinkNil(t *testing.T) {
	ChannelSink{}.OnEvent(Event{Line: 1})
}
