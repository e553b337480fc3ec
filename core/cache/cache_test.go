package cache

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0, nil)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	c.Set("k", "x", 0, nil)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewCache()
	c.Set("short", "v", 1, nil)

	item, ok := c.m.Load("short")
	if !ok {
		t.Fatal("entry missing right after Set")
	}
	// Backdate the expiry instead of sleeping.
	ci := item.(cacheItem)
	ci.ExpiresAt = time.Now().Add(-time.Second).UnixNano()
	c.m.Store("short", ci)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry still served")
	}
}

func TestSetN_GetN(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"a", "b", 3}, "composite-val", 0, nil)
	got, ok := c.GetN("a", "b", 3)
	if !ok || got != "composite-val" {
		t.Errorf("GetN = %v, %v; want composite-val, true", got, ok)
	}
}

func TestTagKey_GetKeysByTag_DeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("k1", "v1", 0, []string{"t1"})
	c.Set("k2", "v2", 0, nil)
	c.TagKey("k2", []string{"t1"})

	keys := c.GetKeysByTag("t1")
	if len(keys) != 2 {
		t.Errorf("GetKeysByTag = %d keys, want 2", len(keys))
	}

	c.DeleteByTag("t1")
	if _, ok := c.Get("k1"); ok {
		t.Error("DeleteByTag: k1 should be gone")
	}
	if _, ok := c.Get("k2"); ok {
		t.Error("DeleteByTag: k2 should be gone")
	}
	if keys := c.GetKeysByTag("t1"); len(keys) != 0 {
		t.Errorf("tag still indexed after DeleteByTag: %v", keys)
	}
}

func TestDeleteByTag_UnknownTag(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 0, []string{"kept"})
	c.DeleteByTag("no-such-tag")
	if _, ok := c.Get("k"); !ok {
		t.Error("unrelated entry dropped")
	}
}
