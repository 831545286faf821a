package taxonomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Category is one named group of canonical skills, in manifest order.
type Category struct {
	Manifest *Manifest `json:"manifest"`
	skills   []string
	set      map[string]struct{}
}

// NewCategory builds a category from a list of skills. Entries are normalized,
// empty ones skipped and duplicates dropped.
func NewCategory(id string, skills ...string) *Category {
	c := &Category{Manifest: &Manifest{ID: id}}
	c.add(skills)
	return c
}

// LoadCategory reads dir/manifest.yaml and loads skills inline, from data.gob, or from CSV.
func LoadCategory(fsys fs.FS, dir string) (*Category, error) {
	manifest, err := LoadManifest(fsys, path.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	c := &Category{Manifest: manifest}

	if len(manifest.Skills) > 0 {
		c.add(manifest.Skills)
		return c.validate()
	}

	// Gob takes priority over CSV.
	gobPath := path.Join(dir, "data.gob")
	if _, err := fs.Stat(fsys, gobPath); err == nil {
		skills, err := loadGob(fsys, gobPath)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", manifest.ID, err)
		}
		c.add(skills)
		return c.validate()
	}

	skills, err := c.loadCSV(fsys, path.Join(dir, manifest.DataFile))
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", manifest.ID, err)
	}
	c.add(skills)
	return c.validate()
}

// Name returns the category identifier.
func (c *Category) Name() string { return c.Manifest.ID }

// Skills returns a copy of the category's skills in load order.
func (c *Category) Skills() []string {
	out := make([]string, len(c.skills))
	copy(out, c.skills)
	return out
}

// Has reports whether skill belongs to the category. skill must already be normalized.
func (c *Category) Has(skill string) bool {
	_, ok := c.set[skill]
	return ok
}

// Len returns the number of skills.
func (c *Category) Len() int { return len(c.skills) }

func (c *Category) add(skills []string) {
	if c.set == nil {
		c.set = make(map[string]struct{}, len(skills))
	}
	var duplicates int
	for _, s := range skills {
		key := normalizeSkill(s)
		if key == "" {
			continue
		}
		if _, exists := c.set[key]; exists {
			duplicates++
			continue
		}
		c.set[key] = struct{}{}
		c.skills = append(c.skills, key)
	}
	if duplicates > 0 {
		slog.Warn("duplicate skills after normalization", "category", c.Manifest.ID, "duplicates", duplicates)
	}
}

func (c *Category) validate() (*Category, error) {
	if len(c.skills) == 0 {
		return nil, fmt.Errorf("category %s: no skills", c.Manifest.ID)
	}
	return c, nil
}

func (c *Category) loadCSV(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	// Transcode non-UTF-8 encodings declared in the manifest.
	var reader io.Reader = f
	if enc := c.Manifest.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if delim := c.Manifest.Format.Delimiter; delim != "" {
		r.Comma = []rune(delim)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var header []string
	if c.Manifest.Format.HasHeader {
		header, err = r.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}

	keyIdx := 0
	if col := c.Manifest.Format.KeyColumn; col != "" && header != nil {
		found := false
		for i, h := range header {
			if h == col {
				keyIdx = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("key column %q not found in header %v", col, header)
		}
	}

	var skills []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if keyIdx >= len(record) {
			continue
		}
		skills = append(skills, record[keyIdx])
	}
	return skills, nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
