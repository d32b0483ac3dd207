package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/internal/calc"
)

// Current schema version - increment when Payload format changes
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// KeyFor hashes the normalized expression text.
func KeyFor(expr string) Digest {
	return sha256.Sum256([]byte(strings.TrimSpace(calc.Normalize(expr))))
}

// DiskCache stores evaluated results by expression digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is the cached outcome of one successful evaluation.
type Payload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Expr  string
	Kind  uint8 // calc.Kind
	Value string
	Limbs uint32
}

// DefaultCacheDir returns $XDG_CACHE_HOME/app or ~/.cache/app.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	stored := *payload
	stored.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(&stored); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Entries written under another schema read as misses.
func (c *DiskCache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var got Payload
	if err := msgpack.NewDecoder(f).Decode(&got); err != nil {
		return false, err
	}
	if got.Schema != cacheSchemaVersion {
		return false, nil
	}
	*out = got
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
