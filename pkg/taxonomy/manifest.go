// CLAUDE:SUMMARY Manifest YAML schema for a taxonomy category: ordering, provenance, inline skills or CSV/gob data file.
package taxonomy

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Manifest describes one taxonomy category: its position, source, and where its skills live.
type Manifest struct {
	ID          string     `yaml:"id" json:"id"`
	Position    int        `yaml:"position" json:"position"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Source      string     `yaml:"source,omitempty" json:"source,omitempty"`
	SourceURL   string     `yaml:"source_url,omitempty" json:"source_url,omitempty"`
	License     string     `yaml:"license,omitempty" json:"license,omitempty"`
	Version     string     `yaml:"version,omitempty" json:"version,omitempty"`
	Skills      []string   `yaml:"skills,omitempty" json:"-"`
	DataFile    string     `yaml:"data_file,omitempty" json:"-"`
	Format      FormatSpec `yaml:"format,omitempty" json:"-"`
}

// FormatSpec describes the CSV layout of a category data file.
type FormatSpec struct {
	Delimiter string `yaml:"delimiter,omitempty"`
	Encoding  string `yaml:"encoding,omitempty"`
	HasHeader bool   `yaml:"has_header,omitempty"`
	KeyColumn string `yaml:"key_column,omitempty"`
}

// Header is the optional taxonomy.yaml at the root of a taxonomy directory.
type Header struct {
	ID      string `yaml:"id" json:"id"`
	Version string `yaml:"version" json:"version"`
}

// LoadManifest reads and parses a manifest.yaml file from fsys.
func LoadManifest(fsys fs.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if len(m.Skills) == 0 && m.DataFile == "" {
		m.DataFile = "data.csv"
	}
	return &m, nil
}

func loadHeader(fsys fs.FS) (Header, error) {
	h := Header{ID: "custom"}
	data, err := fs.ReadFile(fsys, "taxonomy.yaml")
	if err != nil {
		if isNotExist(err) {
			return h, nil
		}
		return h, fmt.Errorf("read taxonomy.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("parse taxonomy.yaml: %w", err)
	}
	if h.ID == "" {
		h.ID = "custom"
	}
	return h, nil
}
