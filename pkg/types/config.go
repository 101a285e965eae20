package types

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Root is an absolute, existing directory acting as the containment
// boundary for one namespace. Immutable after construction.
type Root struct {
	Name string // "" for the primary project root
	Path string // absolute
}

// NewRoot validates dir and returns it as a Root.
func NewRoot(name, dir string) (Root, error) {
	if dir == "" {
		return Root{}, fmt.Errorf("root directory must not be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, fmt.Errorf("resolve root %q: %w", dir, err)
	}
	// Resolve symlinks once here so containment checks compare canonical forms.
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Root{}, fmt.Errorf("root %q does not exist: %w", dir, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return Root{}, fmt.Errorf("root %q is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return Root{}, fmt.Errorf("root %q is not a directory", dir)
	}
	return Root{Name: name, Path: resolved}, nil
}

// Config holds the primary project root and any registered reference roots.
// The process builds one Config at startup and passes it into every core
// call; the core never reads ambient global state.
type Config struct {
	Project    Root
	references map[string]Root
}

// NewConfig creates a Config for the given project directory.
func NewConfig(projectDir string) (*Config, error) {
	root, err := NewRoot("", projectDir)
	if err != nil {
		return nil, err
	}
	return &Config{
		Project:    root,
		references: make(map[string]Root),
	}, nil
}

// AddReference registers a named read-only reference root. Invalid paths and
// duplicate names are hard errors: a misconfigured sandbox boundary must fail
// startup, not be skipped or renamed.
func (c *Config) AddReference(name, dir string) error {
	if name == "" {
		return fmt.Errorf("reference project name must not be empty")
	}
	if _, exists := c.references[name]; exists {
		return fmt.Errorf("duplicate reference project name %q", name)
	}
	root, err := NewRoot(name, dir)
	if err != nil {
		return fmt.Errorf("reference project %q: %w", name, err)
	}
	c.references[name] = root
	return nil
}

// Reference looks up a reference root by name.
func (c *Config) Reference(name string) (Root, bool) {
	r, ok := c.references[name]
	return r, ok
}

// ReferenceNames returns the registered reference project names, sorted.
func (c *Config) ReferenceNames() []string {
	names := make([]string, 0, len(c.references))
	for name := range c.references {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
