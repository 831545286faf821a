// Package taxonomy loads the skill taxonomy: an ordered set of categories, each
// holding canonical lowercase skill names. A Taxonomy is immutable once built;
// extending it means loading a new one and swapping it in through a Registry.
package taxonomy

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

//go:embed defaults
var defaultFS embed.FS

// Taxonomy is an immutable, ordered collection of categories.
type Taxonomy struct {
	id         string
	version    string
	categories []*Category
	byName     map[string]*Category
	skills     []string
}

// New builds a taxonomy from categories in the given order.
// Category names must be unique.
func New(id, version string, categories ...*Category) (*Taxonomy, error) {
	t := &Taxonomy{
		id:         id,
		version:    version,
		categories: categories,
		byName:     make(map[string]*Category, len(categories)),
	}
	seen := make(map[string]struct{})
	for _, c := range categories {
		if _, dup := t.byName[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.Name())
		}
		t.byName[c.Name()] = c
		for _, s := range c.skills {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			t.skills = append(t.skills, s)
		}
	}
	return t, nil
}

// Default returns the built-in taxonomy.
func Default() (*Taxonomy, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadDir loads a taxonomy from a directory on disk.
func LoadDir(dir string) (*Taxonomy, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("taxonomy dir %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS scans the root of fsys for category sub-directories holding a
// manifest.yaml. Categories are ordered by position, then by id.
func LoadFS(fsys fs.FS) (*Taxonomy, error) {
	header, err := loadHeader(fsys)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read taxonomy dir: %w", err)
	}

	var categories []*Category
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := fs.Stat(fsys, path.Join(entry.Name(), "manifest.yaml")); err != nil {
			continue
		}
		c, err := LoadCategory(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("load category %s: %w", entry.Name(), err)
		}
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("taxonomy %s: no categories found", header.ID)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i].Manifest, categories[j].Manifest
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})

	return New(header.ID, header.Version, categories...)
}

// ID returns the taxonomy identifier from taxonomy.yaml.
func (t *Taxonomy) ID() string { return t.id }

// Version returns the taxonomy version from taxonomy.yaml.
func (t *Taxonomy) Version() string { return t.version }

// Categories returns the categories in taxonomy order.
func (t *Taxonomy) Categories() []*Category {
	out := make([]*Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Category returns a category by name.
func (t *Taxonomy) Category(name string) (*Category, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Skills returns every distinct skill across all categories, in taxonomy order.
func (t *Taxonomy) Skills() []string {
	out := make([]string, len(t.skills))
	copy(out, t.skills)
	return out
}

// CategoryCount returns the number of categories.
func (t *Taxonomy) CategoryCount() int { return len(t.categories) }

// SkillCount returns the number of distinct skills.
func (t *Taxonomy) SkillCount() int { return len(t.skills) }

// CategoryInfo is the public metadata for a loaded category.
type CategoryInfo struct {
	Name        string `json:"name"`
	Position    int    `json:"position"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	License     string `json:"license,omitempty"`
	Skills      int    `json:"skills"`
}

// Info returns metadata for all categories in taxonomy order.
func (t *Taxonomy) Info() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(t.categories))
	for _, c := range t.categories {
		infos = append(infos, CategoryInfo{
			Name:        c.Name(),
			Position:    c.Manifest.Position,
			Description: c.Manifest.Description,
			Source:      c.Manifest.Source,
			SourceURL:   c.Manifest.SourceURL,
			License:     c.Manifest.License,
			Skills:      c.Len(),
		})
	}
	return infos
}
