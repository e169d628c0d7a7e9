package board

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tiers.yaml
var builtinYAML []byte

// Builtin returns the tier table compiled into the binary.
func Builtin() (File, error) {
	var f File
	if err := yaml.Unmarshal(builtinYAML, &f); err != nil {
		return File{}, fmt.Errorf("parse builtin tiers: %w", err)
	}
	return f, nil
}

// Loader reads the tier table and merges builtin → override file.
type Loader struct {
	path string // optional override file

	mu     sync.RWMutex
	cached *File
}

// NewLoader creates a loader. path may be empty to use builtin tiers only.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the override file the loader reads, if any.
func (l *Loader) Path() string { return l.path }

// Load returns the merged tier file. Tiers that fail validation are left
// out of the result and reported in the returned error, so callers can
// keep playing with the valid remainder.
func (l *Loader) Load() (File, error) {
	l.mu.RLock()
	if l.cached != nil {
		f := copyFile(*l.cached)
		l.mu.RUnlock()
		return f, nil
	}
	l.mu.RUnlock()

	base, err := Builtin()
	if err != nil {
		return File{}, err
	}
	var override File
	if l.path != "" {
		override, err = readYAML(l.path)
		if err != nil {
			return File{}, fmt.Errorf("read %s: %w", l.path, err)
		}
	}

	merged := merge(base, override)
	valid, verr := filterValid(merged.Tiers)
	merged.Tiers = valid
	if len(valid) == 0 {
		return File{}, errors.Join(&ConfigError{Problems: []string{"no valid tiers"}}, verr)
	}
	if merged.Default != "" && !hasTier(valid, merged.Default) {
		merged.Default = ""
	}

	if verr == nil {
		l.mu.Lock()
		c := copyFile(merged)
		l.cached = &c
		l.mu.Unlock()
	}
	return merged, verr
}

// Invalidate clears the cache. Call after the override file changed.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// readYAML loads a tier file. Missing files return a zero File, no error.
func readYAML(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, err
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, err
	}
	return f, nil
}

// merge lets 'b' override 'a': same-named tiers are replaced in place,
// new tiers are appended, scalars override when set.
func merge(a, b File) File {
	out := copyFile(a)
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Default != "" {
		out.Default = b.Default
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	idx := make(map[string]int, len(out.Tiers))
	for i, t := range out.Tiers {
		idx[t.Name] = i
	}
	for _, t := range b.Tiers {
		if i, ok := idx[t.Name]; ok && t.Name != "" {
			out.Tiers[i] = t.clone()
			continue
		}
		idx[t.Name] = len(out.Tiers)
		out.Tiers = append(out.Tiers, t.clone())
	}
	return out
}

func filterValid(tiers []Tier) ([]Tier, error) {
	var (
		valid []Tier
		errs  []error
	)
	for _, t := range tiers {
		if err := Validate(t); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, t)
	}
	return valid, errors.Join(errs...)
}

func hasTier(tiers []Tier, name string) bool {
	for _, t := range tiers {
		if t.Name == name {
			return true
		}
	}
	return false
}

func copyFile(f File) File {
	out := f
	out.Tiers = make([]Tier, len(f.Tiers))
	for i, t := range f.Tiers {
		out.Tiers[i] = t.clone()
	}
	return out
}
