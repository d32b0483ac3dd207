// Package config loads bigcalc.toml, the optional per-directory settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"bigcalc/bignum"
)

// FileName is the settings file looked up from the working directory upward.
const FileName = "bigcalc.toml"

// Config mirrors bigcalc.toml.
type Config struct {
	Arith  ArithConfig  `toml:"arith"`
	Batch  BatchConfig  `toml:"batch"`
	Output OutputConfig `toml:"output"`
}

type ArithConfig struct {
	KaratsubaThreshold int `toml:"karatsuba_threshold"`
}

type BatchConfig struct {
	Jobs     int    `toml:"jobs"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

type OutputConfig struct {
	Timings bool `toml:"timings"`
}

// File is a loaded settings file.
type File struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{Arith: ArithConfig{KaratsubaThreshold: bignum.DefaultKaratsubaThreshold}}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the nearest settings file. When none exists it
// returns Default with ok == false.
func Load(startDir string) (*File, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &File{Config: Default()}, false, nil
	}
	cfg, err := Decode(path)
	if err != nil {
		return nil, true, err
	}
	root := filepath.Dir(path)
	if cfg.Batch.CacheDir != "" && !filepath.IsAbs(cfg.Batch.CacheDir) {
		cfg.Batch.CacheDir = filepath.Join(root, filepath.FromSlash(cfg.Batch.CacheDir))
	}
	return &File{Path: path, Root: root, Config: cfg}, true, nil
}

// Decode parses and validates one settings file. Keys left out keep their
// Default values.
func Decode(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("arith", "karatsuba_threshold") && cfg.Arith.KaratsubaThreshold < 4 {
		return Config{}, fmt.Errorf("%s: [arith].karatsuba_threshold must be at least 4, got %d", path, cfg.Arith.KaratsubaThreshold)
	}
	if meta.IsDefined("batch", "jobs") && cfg.Batch.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [batch].jobs must not be negative", path)
	}
	if meta.IsDefined("batch", "cache_dir") && strings.TrimSpace(cfg.Batch.CacheDir) == "" {
		return Config{}, fmt.Errorf("%s: [batch].cache_dir is empty", path)
	}
	return cfg, nil
}
