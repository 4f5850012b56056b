package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Entry is a single cached payload with its validity metadata.
type Entry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
	TTL       int             `json:"ttl"` // seconds
	FileHash  string          `json:"fileHash,omitempty"`
}

// valid reports whether the entry is still within its TTL at the given time.
func (e Entry) valid(now time.Time) bool {
	if e.TTL <= 0 {
		return true
	}
	return now.Sub(e.CreatedAt) <= time.Duration(e.TTL)*time.Second
}

// Cache is a file-based TTL cache keyed by prompt text and file hash.
type Cache struct {
	dir        string
	ttlSeconds int
	enabled    bool
}

// New creates a Cache. If dir is empty, the default cache directory is used.
// A zero TTL disables expiration.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}
	if dir == "" {
		d, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir:        dir,
		ttlSeconds: ttlSeconds,
		enabled:    true,
	}, nil
}

// Enabled reports whether caching is active.
func (c *Cache) Enabled() bool { return c.enabled }

// Dir returns the cache directory path.
func (c *Cache) Dir() string { return c.dir }

// Get returns the payload cached for the prompt/fileHash pair, if present and
// still valid. A stale entry is reported as a miss but is not deleted; reads
// never mutate the cache.
func (c *Cache) Get(prompt, fileHash string) (json.RawMessage, bool) {
	if !c.enabled {
		return nil, false
	}
	entry, ok := c.readEntry(c.entryPath(Key(prompt, fileHash)))
	if !ok || !entry.valid(time.Now()) {
		return nil, false
	}
	return entry.Payload, true
}

// Set stores the payload for the prompt/fileHash pair, overwriting any
// previous entry unconditionally.
func (c *Cache) Set(prompt string, payload any, fileHash string) error {
	if !c.enabled {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling cache payload: %w", err)
	}
	key := Key(prompt, fileHash)
	entry := Entry{
		Key:       key,
		Payload:   raw,
		CreatedAt: time.Now(),
		TTL:       c.ttlSeconds,
		FileHash:  fileHash,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(key), data, 0o644)
}

// Stats summarizes entry validity at the time of the call.
type Stats struct {
	Dir     string `json:"dir"`
	Total   int    `json:"totalEntries"`
	Valid   int    `json:"validEntries"`
	Expired int    `json:"expiredEntries"`
}

// GetStats evaluates every stored entry's validity and returns the counts.
// Corrupted entry files are skipped entirely.
func (c *Cache) GetStats() Stats {
	stats := Stats{Dir: c.dir}
	if !c.enabled || c.dir == "" {
		return stats
	}
	now := time.Now()
	for _, path := range c.entryFiles() {
		entry, ok := c.readEntry(path)
		if !ok {
			continue
		}
		stats.Total++
		if entry.valid(now) {
			stats.Valid++
		} else {
			stats.Expired++
		}
	}
	return stats
}

// ClearExpired removes all entries past their TTL and returns how many were
// removed. Corrupted entries are removed as well; they can never be read.
func (c *Cache) ClearExpired() int {
	if !c.enabled || c.dir == "" {
		return 0
	}
	now := time.Now()
	removed := 0
	for _, path := range c.entryFiles() {
		entry, ok := c.readEntry(path)
		if ok && entry.valid(now) {
			continue
		}
		if os.Remove(path) == nil {
			removed++
		}
	}
	return removed
}

// ClearAll removes every entry and returns the count removed.
func (c *Cache) ClearAll() int {
	if !c.enabled || c.dir == "" {
		return 0
	}
	removed := 0
	for _, path := range c.entryFiles() {
		if os.Remove(path) == nil {
			removed++
		}
	}
	return removed
}

// readEntry loads one entry file. Unreadable or corrupted files report !ok.
func (c *Cache) readEntry(path string) (Entry, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}

func (c *Cache) entryFiles() []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			paths = append(paths, filepath.Join(c.dir, e.Name()))
		}
	}
	return paths
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Key derives the cache key for a prompt/fileHash pair.
func Key(prompt, fileHash string) string {
	h := sha256.Sum256([]byte(prompt + "\x00" + fileHash))
	return fmt.Sprintf("%x", h)
}

// HashFileContent returns a 16-character content digest of the file at path.
// If the file cannot be read, a well-formed time-derived 16-character value is
// returned instead, so callers always get a usable (if soft) invalidation key.
func HashFileContent(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fallback := sha256.Sum256([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
		return fmt.Sprintf("%x", fallback)[:16]
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)[:16]
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "arbiter"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "arbiter"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "arbiter", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "arbiter", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "arbiter"), nil
	}
}
