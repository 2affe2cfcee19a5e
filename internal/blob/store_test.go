// File path: internal/blob/store_test.go
package blob

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestSaveLoadClear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if data, err := store.Load("missing"); err != nil || data != nil {
		t.Fatalf("absent key = (%v, %v), want (nil, nil)", data, err)
	}

	payload := []byte(`{"a":1}`)
	if err := store.Save("session/one", payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := store.Load("session/one")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("load = %q, want %q", data, payload)
	}

	// Overwrite replaces wholesale.
	if err := store.Save("session/one", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ = store.Load("session/one")
	if !bytes.Equal(data, []byte(`{"a":2}`)) {
		t.Fatalf("overwrite load = %q", data)
	}

	if err := store.Clear("session/one"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if data, _ := store.Load("session/one"); data != nil {
		t.Fatal("cleared key still loads")
	}
	// Clearing twice is fine.
	if err := store.Clear("session/one"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestKeysRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"b", "a", "weird key/with=chars"} {
		if err := store.Save(key, []byte("x")); err != nil {
			t.Fatalf("save %q: %v", key, err)
		}
	}
	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"a", "b", "weird key/with=chars"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i, key := range want {
		if keys[i] != key {
			t.Fatalf("keys[%d] = %q, want %q", i, keys[i], key)
		}
	}
}

func TestRejectsEmptyInputs(t *testing.T) {
	if _, err := NewStore("  "); err == nil {
		t.Fatal("expected error for empty dir")
	}
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save("", []byte("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := store.Load(" "); err == nil {
		t.Fatal("expected error for blank key")
	}
}

func TestFilesStayInsideRoot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save("../escape", []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "blob_*.json"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one blob file inside root, got %v", matches)
	}
}
