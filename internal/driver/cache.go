package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when CacheEntry format changes
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// CacheKey hashes the settings fingerprint together with the file content, so
// that any settings change invalidates every entry.
func CacheKey(fingerprint string, content []byte) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Cache remembers files known to be formatted under given settings.
// Thread-safe for concurrent access. A nil *Cache is a valid, empty cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is the on-disk record of a formatted file.
type CacheEntry struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Path   string
	Size   uint32
	Stored int64 // unix seconds
}

// OpenCache opens the cache at $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir opens a cache rooted at dir.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном месте
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put records that the content behind key is formatted.
func (c *Cache) Put(key Digest, path string, size int) error {
	if c == nil {
		return nil
	}
	sz, err := safecast.Conv[uint32](size)
	if err != nil {
		return err
	}
	entry := CacheEntry{Schema: cacheSchemaVersion, Path: path, Size: sz, Stored: time.Now().Unix()}

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
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reports whether key is recorded with the current schema.
func (c *Cache) Get(key Digest) (CacheEntry, bool, error) {
	if c == nil {
		return CacheEntry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CacheEntry{}, false, nil
		}
		return CacheEntry{}, false, err
	}
	defer f.Close()

	var entry CacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return CacheEntry{}, false, err
	}
	if entry.Schema != cacheSchemaVersion {
		return CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}
