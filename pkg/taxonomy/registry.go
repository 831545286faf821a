package taxonomy

import (
	"sync"
)

// Registry holds the current taxonomy snapshot. Reload replaces the snapshot
// wholesale; callers holding an older *Taxonomy keep a consistent view.
type Registry struct {
	mu      sync.RWMutex
	current *Taxonomy
	dir     string
}

// NewRegistry creates a registry for dir. An empty dir selects the built-in taxonomy.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Load reads the taxonomy and swaps it in. On error the previous snapshot is kept.
func (r *Registry) Load() error {
	var (
		t   *Taxonomy
		err error
	)
	if r.dir == "" {
		t, err = Default()
	} else {
		t, err = LoadDir(r.dir)
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.current = t
	r.mu.Unlock()
	return nil
}

// Reload reloads the taxonomy from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// Taxonomy returns the current snapshot, or nil before the first successful Load.
func (r *Registry) Taxonomy() *Taxonomy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Dir returns the directory the registry loads from; empty means built-in.
func (r *Registry) Dir() string { return r.dir }

// CategoryCount returns the number of categories in the current snapshot.
func (r *Registry) CategoryCount() int {
	if t := r.Taxonomy(); t != nil {
		return t.CategoryCount()
	}
	return 0
}

// SkillCount returns the number of distinct skills in the current snapshot.
func (r *Registry) SkillCount() int {
	if t := r.Taxonomy(); t != nil {
		return t.SkillCount()
	}
	return 0
}
