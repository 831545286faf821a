package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestCategory writes a manifest + CSV category in a temp directory and returns the root.
func writeTestCategory(t *testing.T, id string, csvContent string) string {
	t.Helper()
	dir := t.TempDir()
	catDir := filepath.Join(dir, id)
	os.MkdirAll(catDir, 0o755)

	manifest := `id: ` + id + `
position: 1
source: unit test
data_file: data.csv
format:
  delimiter: ";"
  encoding: utf-8
  has_header: true
  key_column: "skill"
`
	os.WriteFile(filepath.Join(catDir, "manifest.yaml"), []byte(manifest), 0o644)
	os.WriteFile(filepath.Join(catDir, "data.csv"), []byte(csvContent), 0o644)
	return dir
}

func TestLoadCategory_CSV(t *testing.T) {
	dir := writeTestCategory(t, "langs", "skill;popularity\nPython;10\nGo;8\nC++;7\n")

	c, err := LoadCategory(os.DirFS(dir), "langs")
	if err != nil {
		t.Fatalf("LoadCategory: %v", err)
	}
	if c.Name() != "langs" {
		t.Errorf("Name = %q, want langs", c.Name())
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	for _, key := range []string{"python", "go", "c++"} {
		if !c.Has(key) {
			t.Errorf("expected skill %q after normalization", key)
		}
	}
}

func TestLoadCategory_PreservesOrder(t *testing.T) {
	dir := writeTestCategory(t, "ordered", "skill\nZig\nAda\nMojo\n")

	c, err := LoadCategory(os.DirFS(dir), "ordered")
	if err != nil {
		t.Fatalf("LoadCategory: %v", err)
	}
	want := []string{"zig", "ada", "mojo"}
	got := c.Skills()
	if len(got) != len(want) {
		t.Fatalf("Skills = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Skills[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadCategory_EmptyAndDuplicateKeys(t *testing.T) {
	dir := writeTestCategory(t, "dupes", "skill;x\n;1\nDocker;2\ndocker;3\n  ;4\n")

	c, err := LoadCategory(os.DirFS(dir), "dupes")
	if err != nil {
		t.Fatalf("LoadCategory: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 (empty and duplicate keys skipped)", c.Len())
	}
}

func TestLoadCategory_Inline(t *testing.T) {
	dir := t.TempDir()
	catDir := filepath.Join(dir, "cloud")
	os.MkdirAll(catDir, 0o755)
	os.WriteFile(filepath.Join(catDir, "manifest.yaml"), []byte(`id: cloud
position: 4
skills:
  - AWS
  - ci/cd
  - GitHub Actions
`), 0o644)

	c, err := LoadCategory(os.DirFS(dir), "cloud")
	if err != nil {
		t.Fatalf("LoadCategory: %v", err)
	}
	for _, key := range []string{"aws", "ci/cd", "github actions"} {
		if !c.Has(key) {
			t.Errorf("expected inline skill %q", key)
		}
	}
	if c.Manifest.Position != 4 {
		t.Errorf("Position = %d, want 4", c.Manifest.Position)
	}
}

func TestLoadCategory_MissingKeyColumn(t *testing.T) {
	dir := t.TempDir()
	catDir := filepath.Join(dir, "bad")
	os.MkdirAll(catDir, 0o755)

	manifest := `id: bad
data_file: data.csv
format:
  delimiter: ";"
  has_header: true
  key_column: "nonexistent"
`
	os.WriteFile(filepath.Join(catDir, "manifest.yaml"), []byte(manifest), 0o644)
	os.WriteFile(filepath.Join(catDir, "data.csv"), []byte("skill;freq\na;1\n"), 0o644)

	if _, err := LoadCategory(os.DirFS(dir), "bad"); err == nil {
		t.Error("expected error for missing key column")
	}
}

func TestLoadCategory_NoSkills(t *testing.T) {
	dir := writeTestCategory(t, "empty", "skill\n")

	if _, err := LoadCategory(os.DirFS(dir), "empty"); err == nil {
		t.Error("expected error for category without skills")
	}
}

func TestLoadCategory_MissingID(t *testing.T) {
	dir := t.TempDir()
	catDir := filepath.Join(dir, "noid")
	os.MkdirAll(catDir, 0o755)
	os.WriteFile(filepath.Join(catDir, "manifest.yaml"), []byte("skills: [go]\n"), 0o644)

	if _, err := LoadCategory(os.DirFS(dir), "noid"); err == nil {
		t.Error("expected error for manifest without id")
	}
}

func TestLoadCategory_Latin1(t *testing.T) {
	dir := t.TempDir()
	catDir := filepath.Join(dir, "latin")
	os.MkdirAll(catDir, 0o755)
	os.WriteFile(filepath.Join(catDir, "manifest.yaml"), []byte(`id: latin
format:
  encoding: iso-8859-1
`), 0o644)
	// "Caf\xe9" is "Café" in ISO-8859-1.
	os.WriteFile(filepath.Join(catDir, "data.csv"), []byte("Caf\xe9\n"), 0o644)

	c, err := LoadCategory(os.DirFS(dir), "latin")
	if err != nil {
		t.Fatalf("LoadCategory: %v", err)
	}
	if !c.Has("café") {
		t.Errorf("Skills = %v, want transcoded café", c.Skills())
	}
}

func TestNewCategory(t *testing.T) {
	c := NewCategory("tools", "Git", "git", "", "Bash")
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if !c.Has("git") || !c.Has("bash") {
		t.Errorf("Skills = %v, want git and bash", c.Skills())
	}
	if c.Has("Git") {
		t.Error("Has should only match normalized skills")
	}
}

func TestCategorySkillsReturnsCopy(t *testing.T) {
	c := NewCategory("tools", "git")
	s := c.Skills()
	s[0] = "mutated"
	if c.Skills()[0] != "git" {
		t.Error("Skills() must not expose internal storage")
	}
}
