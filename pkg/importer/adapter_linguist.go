// CLAUDE:SUMMARY Import adapter for GitHub Linguist languages.yml, keeping entries of type programming.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&linguistAdapter{})
}

type linguistAdapter struct{}

func (a *linguistAdapter) ID() string          { return "linguist-languages" }
func (a *linguistAdapter) CategoryID() string  { return "languages" }
func (a *linguistAdapter) Description() string { return "GitHub Linguist programming languages" }
func (a *linguistAdapter) DefaultURL() string {
	return "https://raw.githubusercontent.com/github-linguist/linguist/main/lib/linguist/languages.yml"
}
func (a *linguistAdapter) License() string { return "MIT" }

type linguistLanguage struct {
	Type string `yaml:"type"`
}

func (a *linguistAdapter) Import(ctx context.Context, sourceURL, outputDir string) (Import, error) {
	path, rev, cleanup, err := download(ctx, sourceURL, outputDir, "languages.yml")
	if err != nil {
		return Import{}, err
	}
	defer cleanup()

	f, err := os.Open(path)
	if err != nil {
		return Import{}, err
	}
	defer f.Close()

	skills, err := parseLinguist(f)
	if err != nil {
		return Import{}, err
	}
	fmt.Printf("  %d programming languages\n", len(skills))

	err = writeCategory(outputDir, &taxonomy.Manifest{
		ID:          a.CategoryID(),
		Position:    1,
		Description: "Programming languages (GitHub Linguist)",
		Source:      "GitHub Linguist",
		SourceURL:   sourceURL,
		License:     a.License(),
		Version:     version(),
	}, skills)
	if err != nil {
		return Import{}, err
	}
	return Import{Revision: rev, Skills: len(skills)}, nil
}

// Single-letter names (C, D, E, J) would match initials and list markers such
// as "e.g." under whole-word matching, and "c" would also fire inside "c++".
const minLanguageLen = 2

// parseLinguist returns the names of all languages with type "programming",
// skipping names shorter than minLanguageLen.
func parseLinguist(r io.Reader) ([]string, error) {
	var langs map[string]linguistLanguage
	if err := yaml.NewDecoder(r).Decode(&langs); err != nil {
		return nil, fmt.Errorf("parse languages.yml: %w", err)
	}
	names := make([]string, 0, len(langs))
	for name, l := range langs {
		if l.Type != "programming" {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(name)) < minLanguageLen {
			continue
		}
		names = append(names, name)
	}
	return cleanSkills(names), nil
}
