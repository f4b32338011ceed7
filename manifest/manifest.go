// Package manifest handles gluumy.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/gluumy/vm"
)

// Manifest represents a gluumy.toml configuration file.
type Manifest struct {
	Store        Store        `toml:"store"`
	Vocabularies Vocabularies `toml:"vocabularies"`
	Repl         Repl         `toml:"repl"`
	Log          Log          `toml:"log"`

	// Dir is the directory containing the gluumy.toml file (set at load time).
	Dir string `toml:"-"`
}

// Store configures the operand stack.
type Store struct {
	// Capacity is the slot pre-allocation hint.
	Capacity int `toml:"capacity"`
	// MaxDepth is a hard depth ceiling; 0 leaves the stack unbounded.
	MaxDepth int `toml:"max-depth"`
}

// Vocabularies configures the dictionary registry.
type Vocabularies struct {
	// MaxActive bounds the simultaneously active search order.
	MaxActive int `toml:"max-active"`
}

// Repl configures the interactive loop.
type Repl struct {
	// History is the path of the transcript database. Empty selects
	// ~/.gluumy/history.db; "off" disables the transcript.
	History string `toml:"history"`
}

// Log configures diagnostic output.
type Log struct {
	// Level is one of "error", "warning", "info", "debug".
	Level string `toml:"level"`
}

// Default returns a manifest with every field at its default.
func Default() *Manifest {
	return &Manifest{
		Store:        Store{Capacity: vm.DefaultStoreCapacity},
		Vocabularies: Vocabularies{MaxActive: vm.DefaultMaxActiveVocabularies},
		Log:          Log{Level: "warning"},
	}
}

// RuntimeOptions translates the manifest into vm options.
func (m *Manifest) RuntimeOptions() vm.Options {
	return vm.Options{
		StoreCapacity:         m.Store.Capacity,
		MaxStoreDepth:         m.Store.MaxDepth,
		MaxActiveVocabularies: m.Vocabularies.MaxActive,
	}
}

// Load parses a gluumy.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "gluumy.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	return m, nil
}

// FindAndLoad walks up from startDir to find a gluumy.toml file, then loads
// and returns the manifest. Returns the defaults if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "gluumy.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
