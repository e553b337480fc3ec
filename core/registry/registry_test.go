package registry

import "testing"

func TestSetGet(t *testing.T) {
	r := &Registry{
		values: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
	if _, ok := r.GetGlobal("missing"); ok {
		t.Error("GetGlobal missing key: want false")
	}
	r.SetGlobal("k", 42)
	v, ok := r.GetGlobal("k")
	if !ok || v != 42 {
		t.Errorf("GetGlobal = %v, %v; want 42, true", v, ok)
	}
}

func TestLocking(t *testing.T) {
	r := &Registry{
		values: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
	if r.IsLocked("k") {
		t.Error("fresh key locked")
	}
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Error("Lock did not take")
	}
	r.UnlockForTesting("k")
	if r.IsLocked("k") {
		t.Error("UnlockForTesting did not take")
	}
}

func TestGlobalRegistryExists(t *testing.T) {
	if GlobalRegistry == nil {
		t.Fatal("GlobalRegistry is nil")
	}
}
