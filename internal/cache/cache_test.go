package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testPayload struct {
	Score    int    `json:"score"`
	Analysis string `json:"analysis"`
}

func newTestCache(t *testing.T, ttlSeconds int) *Cache {
	t.Helper()
	c, err := New(true, t.TempDir(), ttlSeconds)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return c
}

func TestCache_HitMiss(t *testing.T) {
	c := newTestCache(t, 300)

	prompt := "Review this refactoring plan"
	fileHash := "abc123"

	if _, ok := c.Get(prompt, fileHash); ok {
		t.Error("expected miss before set")
	}

	if err := c.Set(prompt, testPayload{Score: 85, Analysis: "Good plan"}, fileHash); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	raw, ok := c.Get(prompt, fileHash)
	if !ok {
		t.Fatal("expected hit after set")
	}
	var got testPayload
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if got.Score != 85 || got.Analysis != "Good plan" {
		t.Errorf("payload = %+v", got)
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	c := newTestCache(t, 1)

	if err := c.Set("Test prompt", testPayload{Score: 70}, ""); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, ok := c.Get("Test prompt", ""); !ok {
		t.Error("expected hit before expiration")
	}

	time.Sleep(1100 * time.Millisecond)

	if _, ok := c.Get("Test prompt", ""); ok {
		t.Error("expected miss after TTL expiration")
	}
}

func TestCache_GetDoesNotDeleteStale(t *testing.T) {
	c := newTestCache(t, 1)

	if err := c.Set("prompt", testPayload{Score: 60}, ""); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	if _, ok := c.Get("prompt", ""); ok {
		t.Fatal("expected stale miss")
	}

	// The stale entry must still exist on disk until ClearExpired runs.
	stats := c.GetStats()
	if stats.Total != 1 || stats.Expired != 1 {
		t.Errorf("stats = %+v, want total=1 expired=1", stats)
	}
	if removed := c.ClearExpired(); removed != 1 {
		t.Errorf("ClearExpired = %d, want 1", removed)
	}
}

func TestCache_FileHashInvalidation(t *testing.T) {
	c := newTestCache(t, 300)
	prompt := "Analyze this file"

	if err := c.Set(prompt, testPayload{Score: 1}, "hash_version_1"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if _, ok := c.Get(prompt, "hash_version_1"); !ok {
		t.Error("expected hit with original hash")
	}
	if _, ok := c.Get(prompt, "hash_version_2"); ok {
		t.Error("expected miss with changed hash")
	}

	if err := c.Set(prompt, testPayload{Score: 2}, "hash_version_2"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Both cache lines coexist independently.
	raw1, ok1 := c.Get(prompt, "hash_version_1")
	raw2, ok2 := c.Get(prompt, "hash_version_2")
	if !ok1 || !ok2 {
		t.Fatal("expected both cache lines to hit")
	}
	var p1, p2 testPayload
	json.Unmarshal(raw1, &p1)
	json.Unmarshal(raw2, &p2)
	if p1.Score != 1 || p2.Score != 2 {
		t.Errorf("payloads = %d, %d, want 1, 2", p1.Score, p2.Score)
	}
}

func TestCache_GetStats(t *testing.T) {
	c := newTestCache(t, 1)

	stats := c.GetStats()
	if stats.Total != 0 || stats.Valid != 0 || stats.Expired != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, prompt := range []string{"p1", "p2", "p3"} {
		if err := c.Set(prompt, testPayload{}, ""); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	stats = c.GetStats()
	if stats.Total != 3 || stats.Valid != 3 || stats.Expired != 0 {
		t.Errorf("stats = %+v, want 3 valid", stats)
	}

	time.Sleep(1100 * time.Millisecond)

	stats = c.GetStats()
	if stats.Total != 3 || stats.Valid != 0 || stats.Expired != 3 {
		t.Errorf("stats = %+v, want 3 expired", stats)
	}
}

func TestCache_ClearExpired(t *testing.T) {
	c := newTestCache(t, 1)

	for _, prompt := range []string{"p1", "p2", "p3"} {
		if err := c.Set(prompt, testPayload{}, ""); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}
	time.Sleep(1100 * time.Millisecond)

	if removed := c.ClearExpired(); removed != 3 {
		t.Errorf("ClearExpired = %d, want 3", removed)
	}
	if stats := c.GetStats(); stats.Total != 0 {
		t.Errorf("stats after clear = %+v, want empty", stats)
	}
}

func TestCache_ClearAll(t *testing.T) {
	c := newTestCache(t, 300)

	for _, prompt := range []string{"p1", "p2", "p3", "p4", "p5"} {
		if err := c.Set(prompt, testPayload{}, ""); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	if removed := c.ClearAll(); removed != 5 {
		t.Errorf("ClearAll = %d, want 5", removed)
	}
	if stats := c.GetStats(); stats.Total != 0 {
		t.Errorf("stats after clear = %+v, want empty", stats)
	}
}

func TestCache_CorruptedEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 300)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	path := filepath.Join(dir, "corrupted.json")
	if err := os.WriteFile(path, []byte("{ invalid json }"), 0o644); err != nil {
		t.Fatalf("writing corrupted entry: %v", err)
	}

	// Corrupted entries are invisible to reads and stats.
	stats := c.GetStats()
	if stats.Total != 0 {
		t.Errorf("stats = %+v, corrupted entry should be skipped", stats)
	}

	// But removed by ClearExpired.
	if removed := c.ClearExpired(); removed != 1 {
		t.Errorf("ClearExpired = %d, want 1 (corrupted entry)", removed)
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(false, "", 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c.Enabled() {
		t.Error("cache should be disabled")
	}
	if err := c.Set("key", testPayload{}, ""); err != nil {
		t.Errorf("Set on disabled cache should not error: %v", err)
	}
	if _, ok := c.Get("key", ""); ok {
		t.Error("Get on disabled cache should always miss")
	}
}

func TestHashFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.txt")
	if err := os.WriteFile(path, []byte("Original content"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	h1 := HashFileContent(path)
	if len(h1) != 16 {
		t.Errorf("hash length = %d, want 16", len(h1))
	}

	if err := os.WriteFile(path, []byte("Modified content"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	h2 := HashFileContent(path)
	if h2 == h1 {
		t.Error("hash should change with content")
	}
	if h3 := HashFileContent(path); h3 != h2 {
		t.Error("hash should be deterministic for identical content")
	}
}

func TestHashFileContent_MissingFile(t *testing.T) {
	h := HashFileContent(filepath.Join(t.TempDir(), "nonexistent.txt"))
	if len(h) != 16 {
		t.Errorf("fallback hash length = %d, want 16", len(h))
	}
}

func TestKey(t *testing.T) {
	k1 := Key("prompt", "hash")
	k2 := Key("prompt", "hash")
	k3 := Key("prompt", "other")
	if k1 != k2 {
		t.Error("same inputs should produce same key")
	}
	if k1 == k3 {
		t.Error("different file hash should produce different key")
	}
}
