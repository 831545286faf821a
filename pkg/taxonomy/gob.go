// CLAUDE:SUMMARY Gob serialization of category skill lists, written by importers and preferred over CSV at load time.
package taxonomy

import (
	"encoding/gob"
	"fmt"
	"io/fs"
	"os"
)

// loadGob decodes a gob-encoded skill list from fsys.
func loadGob(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var skills []string
	if err := gob.NewDecoder(f).Decode(&skills); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return skills, nil
}

// SaveGob serializes a skill list to a gob-encoded file at path.
func SaveGob(skills []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(skills); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return nil
}
