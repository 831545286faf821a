package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

const linguistYAML = `Go:
  type: programming
  color: "#00ADD8"
  extensions:
  - ".go"
Markdown:
  type: prose
Python:
  type: programming
  aliases:
  - python3
JSON:
  type: data
C++:
  type: programming
C:
  type: programming
D:
  type: programming
`

const onetTSV = "O*NET-SOC Code\tTitle\tExample\tCommodity Code\tCommodity Title\tHot Technology\tIn Demand\n" +
	"15-1252.00\tSoftware Developers\tPython\t43232405\tObject or component oriented development software\tY\tY\n" +
	"15-1252.00\tSoftware Developers\tMicrosoft Excel\t43232110\tSpreadsheet software\tY\tN\n" +
	"15-1252.00\tSoftware Developers\tObscure Tool\t43232999\tOther software\tN\tN\n" +
	"15-1211.00\tComputer Systems Analysts\tPython\t43232405\tObject or component oriented development software\tY\tN\n"

func TestRegistry_AdaptersRegistered(t *testing.T) {
	for _, id := range []string{"linguist-languages", "onet-technology"} {
		a, err := Get(id)
		if err != nil {
			t.Fatalf("Get(%s): %v", id, err)
		}
		if a.DefaultURL() == "" || a.License() == "" {
			t.Errorf("%s: missing default url or license", id)
		}
	}
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown adapter")
	}

	all := All()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID() > all[i].ID() {
			t.Errorf("All not sorted: %s before %s", all[i-1].ID(), all[i].ID())
		}
	}
}

func TestParseLinguist(t *testing.T) {
	got, err := parseLinguist(strings.NewReader(linguistYAML))
	if err != nil {
		t.Fatalf("parseLinguist: %v", err)
	}
	if strings.Join(got, ",") != "c++,go,python" {
		t.Errorf("languages = %v", got)
	}
}

func TestParseLinguist_SkipsSingleLetterNames(t *testing.T) {
	got, err := parseLinguist(strings.NewReader("C:\n  type: programming\nR:\n  type: programming\nGo:\n  type: programming\n"))
	if err != nil {
		t.Fatalf("parseLinguist: %v", err)
	}
	if strings.Join(got, ",") != "go" {
		t.Errorf("languages = %v, want [go]", got)
	}
}

func TestParseLinguist_Invalid(t *testing.T) {
	if _, err := parseLinguist(strings.NewReader("- just\n- a list\n")); err == nil {
		t.Error("expected error for non-mapping document")
	}
}

func TestParseONET(t *testing.T) {
	got, err := parseONET(strings.NewReader(onetTSV))
	if err != nil {
		t.Fatalf("parseONET: %v", err)
	}
	if strings.Join(got, ",") != "microsoft excel,python" {
		t.Errorf("technologies = %v", got)
	}
}

func TestParseONET_MissingColumns(t *testing.T) {
	if _, err := parseONET(strings.NewReader("a\tb\n1\t2\n")); err == nil {
		t.Error("expected error for missing columns")
	}
}

func serve(body, etag string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		w.Write([]byte(body))
	}))
}

func TestImport_EndToEnd(t *testing.T) {
	cases := []struct {
		adapter  Adapter
		body     string
		category string
		want     []string
	}{
		{&linguistAdapter{}, linguistYAML, "languages", []string{"c++", "go", "python"}},
		{&onetAdapter{}, onetTSV, "technologies", []string{"microsoft excel", "python"}},
	}

	root := t.TempDir()
	for _, tc := range cases {
		etag := `"` + tc.category + `-1"`
		ts := serve(tc.body, etag)
		imp, err := tc.adapter.Import(context.Background(), ts.URL, root)
		ts.Close()
		if err != nil {
			t.Fatalf("%s Import: %v", tc.adapter.ID(), err)
		}
		if imp.Skills != len(tc.want) || imp.ETag != etag || imp.At.IsZero() {
			t.Errorf("%s Import = %+v, want %d skills at etag %s", tc.adapter.ID(), imp, len(tc.want), etag)
		}
	}

	tax, err := taxonomy.LoadDir(root)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if tax.CategoryCount() != 2 {
		t.Fatalf("categories = %d, want 2", tax.CategoryCount())
	}
	if first := tax.Categories()[0].Name(); first != "languages" {
		t.Errorf("first category = %s, want languages", first)
	}
	for _, tc := range cases {
		c, ok := tax.Category(tc.category)
		if !ok {
			t.Fatalf("category %s missing", tc.category)
		}
		if got := strings.Join(c.Skills(), ","); got != strings.Join(tc.want, ",") {
			t.Errorf("%s skills = %s", tc.category, got)
		}
		if c.Manifest.SourceURL == "" || c.Manifest.License == "" {
			t.Errorf("%s manifest missing provenance: %+v", tc.category, c.Manifest)
		}
	}
}
