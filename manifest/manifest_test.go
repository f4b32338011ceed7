package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/gluumy/vm"
)

func TestLoadManifest(t *testing.T) {
	// Create a temporary directory with a gluumy.toml
	dir := t.TempDir()
	tomlContent := `
[store]
capacity = 128
max-depth = 64

[vocabularies]
max-active = 8

[repl]
history = "off"

[log]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "gluumy.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Store.Capacity != 128 {
		t.Errorf("store capacity = %d, want 128", m.Store.Capacity)
	}
	if m.Store.MaxDepth != 64 {
		t.Errorf("store max-depth = %d, want 64", m.Store.MaxDepth)
	}
	if m.Vocabularies.MaxActive != 8 {
		t.Errorf("vocabularies max-active = %d, want 8", m.Vocabularies.MaxActive)
	}
	if m.Repl.History != "off" {
		t.Errorf("repl history = %q, want off", m.Repl.History)
	}
	if m.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", m.Log.Level)
	}
	if m.Dir == "" {
		t.Error("manifest Dir not set at load time")
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	// A sparse manifest keeps defaults for everything it omits.
	if err := os.WriteFile(filepath.Join(dir, "gluumy.toml"), []byte("[store]\nmax-depth = 16\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Store.Capacity != vm.DefaultStoreCapacity {
		t.Errorf("store capacity = %d, want default %d", m.Store.Capacity, vm.DefaultStoreCapacity)
	}
	if m.Store.MaxDepth != 16 {
		t.Errorf("store max-depth = %d, want 16", m.Store.MaxDepth)
	}
	if m.Vocabularies.MaxActive != vm.DefaultMaxActiveVocabularies {
		t.Errorf("max-active = %d, want default %d", m.Vocabularies.MaxActive, vm.DefaultMaxActiveVocabularies)
	}
	if m.Log.Level != "warning" {
		t.Errorf("log level = %q, want warning", m.Log.Level)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load of a directory without gluumy.toml should fail")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "gluumy.toml"), []byte("[store]\ncapacity = 99\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m.Store.Capacity != 99 {
		t.Errorf("store capacity = %d, want 99 from the root manifest", m.Store.Capacity)
	}
}

func TestFindAndLoadFallsBackToDefaults(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m.Store.Capacity != vm.DefaultStoreCapacity {
		t.Errorf("fallback capacity = %d, want default", m.Store.Capacity)
	}
}

func TestRuntimeOptions(t *testing.T) {
	m := Default()
	m.Store.MaxDepth = 10
	m.Vocabularies.MaxActive = 5

	opts := m.RuntimeOptions()
	if opts.StoreCapacity != vm.DefaultStoreCapacity || opts.MaxStoreDepth != 10 || opts.MaxActiveVocabularies != 5 {
		t.Errorf("RuntimeOptions() = %+v", opts)
	}
}
