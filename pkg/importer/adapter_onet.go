// CLAUDE:SUMMARY Import adapter for O*NET Technology Skills (tab-separated), keeping the "hot technology" examples.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

func init() {
	Register(&onetAdapter{})
}

type onetAdapter struct{}

func (a *onetAdapter) ID() string          { return "onet-technology" }
func (a *onetAdapter) CategoryID() string  { return "technologies" }
func (a *onetAdapter) Description() string { return "O*NET hot technologies (US Department of Labor)" }
func (a *onetAdapter) DefaultURL() string {
	return "https://www.onetcenter.org/dl_files/database/db_29_1_text/Technology%20Skills.txt"
}
func (a *onetAdapter) License() string { return "CC BY 4.0" }

func (a *onetAdapter) Import(ctx context.Context, sourceURL, outputDir string) (Import, error) {
	path, rev, cleanup, err := download(ctx, sourceURL, outputDir, "technology_skills.txt")
	if err != nil {
		return Import{}, err
	}
	defer cleanup()

	f, err := os.Open(path)
	if err != nil {
		return Import{}, err
	}
	defer f.Close()

	skills, err := parseONET(f)
	if err != nil {
		return Import{}, err
	}
	fmt.Printf("  %d hot technologies\n", len(skills))

	err = writeCategory(outputDir, &taxonomy.Manifest{
		ID:          a.CategoryID(),
		Position:    6,
		Description: "In-demand workplace technologies (O*NET)",
		Source:      "O*NET Technology Skills",
		SourceURL:   sourceURL,
		License:     a.License(),
		Version:     version(),
	}, skills)
	if err != nil {
		return Import{}, err
	}
	return Import{Revision: rev, Skills: len(skills)}, nil
}

// parseONET reads the tab-separated Technology Skills file and returns the
// Example column of rows flagged as Hot Technology.
func parseONET(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	exampleCol, hotCol := -1, -1
	for i, h := range header {
		switch h {
		case "Example":
			exampleCol = i
		case "Hot Technology":
			hotCol = i
		}
	}
	if exampleCol < 0 || hotCol < 0 {
		return nil, fmt.Errorf("missing Example or Hot Technology column in %v", header)
	}

	var names []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) <= exampleCol || len(rec) <= hotCol {
			continue
		}
		if rec[hotCol] == "Y" {
			names = append(names, rec[exampleCol])
		}
	}
	return cleanSkills(names), nil
}
