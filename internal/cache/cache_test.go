package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKeyIsStableAndNamespaced(t *testing.T) {
	k1 := Key("Eiffel Tower")
	k2 := Key("Eiffel Tower")
	k3 := Key("eiffel tower")

	if k1 != k2 {
		t.Error("same query should produce the same key")
	}
	if k1 == k3 {
		t.Error("different queries should produce different keys")
	}
	if !strings.HasPrefix(k1, "hguard:v1:") {
		t.Errorf("key %q missing namespace prefix", k1)
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("lookup of missing key reported a hit")
	}

	if err := c.Set("k", []byte("evidence"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("evidence")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry still readable")
	}
}

func TestDiskCachePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	c1 := NewDiskCache(dir, time.Minute)
	if err := c1.Set(Key("query"), []byte("stored"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	c2 := NewDiskCache(dir, time.Minute)
	val, found := c2.Get(Key("query"))
	if !found || !bytes.Equal(val, []byte("stored")) {
		t.Errorf("Get = %q, %v", val, found)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry still readable")
	}
}

func TestDiskCacheClear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("cleared entry still readable")
	}
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed disk through a first layered instance
	c1 := NewLayeredCache(time.Minute, dir, time.Minute)
	if err := c1.Set("k", []byte("layered"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh instance has a cold memory layer but warm disk
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := c2.Get("k")
	if !found || !bytes.Equal(val, []byte("layered")) {
		t.Fatalf("disk lookup failed: %q, %v", val, found)
	}

	// After promotion the memory layer answers even without disk
	if err := c2.disk.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	val, found = c2.Get("k")
	if !found || !bytes.Equal(val, []byte("layered")) {
		t.Errorf("promoted entry lost: %q, %v", val, found)
	}
}

func TestLayeredCacheDelete(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted entry still readable")
	}
}
