// CLAUDE:SUMMARY Shared import utilities: HTTP download with retries, skill list cleanup, category writer (gob + manifest YAML).
package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

// downloadFile downloads url to dest with retries and timeout. The returned
// Revision holds the response validators.
func downloadFile(ctx context.Context, url, dest string) (Revision, error) {
	client := &http.Client{Timeout: 10 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return Revision{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return Revision{}, fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return Revision{}, fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return Revision{}, closeErr
		}
		return revisionOf(resp), nil
	}
	return Revision{}, fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}

func revisionOf(resp *http.Response) Revision {
	return Revision{
		At:           time.Now(),
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}
}

// download fetches sourceURL into a scratch directory under outputDir and
// returns the local path, the revision served and a cleanup func.
func download(ctx context.Context, sourceURL, outputDir, name string) (string, Revision, func(), error) {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return "", Revision{}, nil, err
	}
	cleanup := func() { os.RemoveAll(dlDir) }

	dest := filepath.Join(dlDir, name)
	fmt.Printf("  downloading %s...\n", sourceURL)
	rev, err := downloadFile(ctx, sourceURL, dest)
	if err != nil {
		cleanup()
		return "", Revision{}, nil, fmt.Errorf("download: %w", err)
	}
	return dest, rev, cleanup, nil
}

// cleanSkills normalizes, deduplicates and sorts raw skill names.
func cleanSkills(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = taxonomy.Normalize(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// writeCategory writes skills as data.gob plus manifest.yaml into outputDir/<m.ID>.
func writeCategory(outputDir string, m *taxonomy.Manifest, skills []string) error {
	if len(skills) == 0 {
		return fmt.Errorf("category %s: no skills extracted", m.ID)
	}
	dir := filepath.Join(outputDir, m.ID)
	if err := ensureDir(dir); err != nil {
		return err
	}
	if err := taxonomy.SaveGob(skills, filepath.Join(dir, "data.gob")); err != nil {
		return fmt.Errorf("save gob: %w", err)
	}
	m.DataFile = "data.gob"
	return writeManifest(dir, m)
}

// writeManifest writes a Manifest as YAML to dir/manifest.yaml.
func writeManifest(dir string, m *taxonomy.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func version() string {
	return time.Now().UTC().Format("2006-01")
}
