package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bigcalc/bignum"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, `
[arith]
karatsuba_threshold = 48

[batch]
jobs = 3
cache = true
cache_dir = ".cache"

[output]
timings = true
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	file, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	want := Config{
		Arith:  ArithConfig{KaratsubaThreshold: 48},
		Batch:  BatchConfig{Jobs: 3, Cache: true, CacheDir: filepath.Join(root, ".cache")},
		Output: OutputConfig{Timings: true},
	}
	if diff := cmp.Diff(want, file.Config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if file.Root != root {
		t.Fatalf("root = %q, want %q", file.Root, root)
	}
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	if _, found, _ := Find(dir); found {
		t.Skip("a bigcalc.toml exists above the temp dir")
	}
	file, ok, err := Load(dir)
	if err != nil || ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if diff := cmp.Diff(Default(), file.Config); diff != "" {
		t.Fatalf("default mismatch:\n%s", diff)
	}
}

func TestDecodePartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[output]\ntimings = true\n")
	cfg, err := Decode(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Arith.KaratsubaThreshold != bignum.DefaultKaratsubaThreshold || !cfg.Output.Timings {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"[arith]\nkaratsuba_threshold = 2\n": "at least 4",
		"[batch]\njobs = -1\n":               "must not be negative",
		"[batch]\ncache_dir = \" \"\n":       "cache_dir is empty",
		"[arith]\nthreshold = 8\n":           "unknown keys: arith.threshold",
		"[arith\n":                           "failed to parse TOML",
	}
	for body, want := range cases {
		path := writeFile(t, t.TempDir(), body)
		_, err := Decode(path)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("Decode(%q) = %v, want error containing %q", body, err, want)
		}
	}
}
