package importer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func statusServer(t *testing.T, code int, etag string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if etag != "" {
			w.Header().Set("ETag", etag)
		}
		if code == http.StatusMovedPermanently {
			w.Header().Set("Location", "https://example.com/moved")
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCheckAll_Statuses(t *testing.T) {
	ok := statusServer(t, http.StatusOK, "")
	moved := statusServer(t, http.StatusMovedPermanently, "")
	gone := statusServer(t, http.StatusNotFound, "")
	broken := statusServer(t, http.StatusInternalServerError, "")

	sdb := openTestDB(t,
		&fakeAdapter{"ok", "languages", ok.URL, "MIT"},
		&fakeAdapter{"moved", "tools", moved.URL, "MIT"},
		&fakeAdapter{"gone", "cloud", gone.URL, "MIT"},
		&fakeAdapter{"broken", "databases", broken.URL, "MIT"},
		&fakeAdapter{"dead", "frameworks", "http://127.0.0.1:1", "MIT"},
	)

	sum := NewChecker(sdb, quietLogger, time.Hour).CheckAll(context.Background())
	if sum.OK != 2 || sum.Failed != 3 || sum.Total() != 5 {
		t.Errorf("summary = %+v, want 2 ok 3 failed", sum)
	}

	want := map[string]int{"ok": 200, "moved": 301, "gone": 404, "broken": 500, "dead": 0}
	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	for _, src := range sources {
		if src.Checked == nil {
			t.Errorf("%s: not checked", src.AdapterID)
			continue
		}
		if src.Checked.Status != want[src.AdapterID] {
			t.Errorf("%s: status = %d, want %d", src.AdapterID, src.Checked.Status, want[src.AdapterID])
		}
		if src.AdapterID == "dead" && src.Checked.Err == "" {
			t.Error("dead: expected network error recorded")
		}
	}
}

func TestCheckAll_DetectsChangedSource(t *testing.T) {
	same := statusServer(t, http.StatusOK, `"v1"`)
	updated := statusServer(t, http.StatusOK, `"v2"`)
	fresh := statusServer(t, http.StatusOK, `"v9"`)

	sdb := openTestDB(t,
		&fakeAdapter{"same", "languages", same.URL, "MIT"},
		&fakeAdapter{"updated", "technologies", updated.URL, "CC BY 4.0"},
		&fakeAdapter{"fresh", "tools", fresh.URL, "MIT"},
	)
	for _, id := range []string{"same", "updated"} {
		if err := sdb.RecordImport(id, Import{Revision: Revision{ETag: `"v1"`}, Skills: 3}); err != nil {
			t.Fatalf("RecordImport %s: %v", id, err)
		}
	}

	sum := NewChecker(sdb, quietLogger, time.Hour).CheckAll(context.Background())
	if len(sum.Changed) != 1 || sum.Changed[0] != "updated" {
		t.Errorf("Changed = %v, want [updated]", sum.Changed)
	}

	src, _ := sdb.Get("updated")
	if !src.Changed() || src.Checked.ETag != `"v2"` {
		t.Errorf("stored source = %+v, want changed with etag v2", src)
	}
}

func TestCheckAll_HeadNotAllowed(t *testing.T) {
	var methods []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Last-Modified", "Wed, 04 Feb 2026 09:00:00 GMT")
		w.Write([]byte("Go:\n  type: programming\n"))
	}))
	defer ts.Close()

	sdb := openTestDB(t, &fakeAdapter{"get-only", "languages", ts.URL, "MIT"})
	sum := NewChecker(sdb, quietLogger, time.Hour).CheckAll(context.Background())
	if sum.OK != 1 {
		t.Errorf("summary = %+v, want 1 ok", sum)
	}
	if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
		t.Errorf("methods = %v, want HEAD then GET", methods)
	}
	src, _ := sdb.Get("get-only")
	if src.Checked.LastModified != "Wed, 04 Feb 2026 09:00:00 GMT" {
		t.Errorf("LastModified = %q", src.Checked.LastModified)
	}
}

func TestCheckAll_EmptyDB(t *testing.T) {
	sdb := openTestDB(t)
	if sum := NewChecker(sdb, quietLogger, time.Hour).CheckAll(context.Background()); sum.Total() != 0 {
		t.Errorf("summary = %+v, want empty", sum)
	}
}
