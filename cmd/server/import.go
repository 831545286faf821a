// CLAUDE:SUMMARY CLI subcommand that downloads skill categories from public sources via import adapters into a taxonomy directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/skillmatch/pkg/importer"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to import (e.g. linguist-languages)")
	all := fs.Bool("all", false, "import all available sources")
	taxDir := fs.String("taxonomy-dir", "taxonomy", "taxonomy directory receiving the categories")
	dbPath := fs.String("sources-db", "", "sources database (default: <taxonomy-dir>/sources.db)")
	setURL := fs.String("set-url", "", "override the source URL of --source and exit")
	fs.Parse(args)

	if *dbPath == "" {
		*dbPath = filepath.Join(*taxDir, "sources.db")
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", filepath.Dir(*dbPath), err)
		os.Exit(1)
	}

	// Open source DB and seed defaults.
	sdb, err := importer.OpenSourceDB(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open sources db: %v\n", err)
		os.Exit(1)
	}
	defer sdb.Close()

	if err := sdb.Seed(importer.All()); err != nil {
		fmt.Fprintf(os.Stderr, "seed sources: %v\n", err)
		os.Exit(1)
	}

	if *setURL != "" {
		if *source == "" {
			fmt.Fprintln(os.Stderr, "--set-url requires --source")
			os.Exit(1)
		}
		if err := sdb.SetURL(*source, *setURL); err != nil {
			fmt.Fprintf(os.Stderr, "set url: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[%s] source url -> %s\n", *source, *setURL)
		return
	}

	if !*all && *source == "" {
		listSources(os.Stdout, sdb)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var targets []importer.Adapter
	if *all {
		targets = importer.All()
	} else {
		a, err := importer.Get(*source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n\n", err)
			listSources(os.Stderr, sdb)
			os.Exit(1)
		}
		targets = []importer.Adapter{a}
	}

	failed := runImports(ctx, os.Stdout, os.Stderr, sdb, targets, *taxDir)
	if failed > 0 {
		os.Exit(1)
	}
	fmt.Println("Reload a running server with SIGHUP or POST /v1/taxonomy/reload.")
}

// runImports imports every adapter and returns the number of failures.
func runImports(ctx context.Context, out, errOut io.Writer, sdb *importer.SourceDB, targets []importer.Adapter, taxDir string) int {
	failed := 0
	for _, a := range targets {
		url, err := sdb.GetURL(a.ID())
		if err != nil {
			fmt.Fprintf(errOut, "[%s] ERROR (url): %v\n", a.ID(), err)
			failed++
			continue
		}
		fmt.Fprintf(out, "[%s] importing...\n", a.ID())
		imp, err := a.Import(ctx, url, taxDir)
		if err != nil {
			fmt.Fprintf(errOut, "[%s] ERROR: %v\n", a.ID(), err)
			failed++
			continue
		}
		if err := sdb.RecordImport(a.ID(), imp); err != nil {
			fmt.Fprintf(errOut, "[%s] ERROR (record): %v\n", a.ID(), err)
			failed++
			continue
		}
		fmt.Fprintf(out, "[%s] OK %d skills -> %s/%s/\n", a.ID(), imp.Skills, taxDir, a.CategoryID())
	}
	return failed
}

func listSources(w io.Writer, sdb *importer.SourceDB) {
	fmt.Fprintln(w, "Available sources:")
	fmt.Fprintln(w)
	sources, _ := sdb.ListSources()
	for _, src := range sources {
		desc := ""
		if a, err := importer.Get(src.AdapterID); err == nil {
			desc = a.Description()
		}
		state := "never imported"
		if src.Imported != nil {
			state = fmt.Sprintf("imported %s, %d skills", src.Imported.At.Format(time.DateOnly), src.Imported.Skills)
		}
		if src.Checked != nil {
			state += fmt.Sprintf(", check [%d]", src.Checked.Status)
		}
		if src.Changed() {
			state += ", CHANGED"
		}
		fmt.Fprintf(w, "  %-20s  %s  (-> %s, %s)  %s\n", src.AdapterID, desc, src.CategoryID, src.License, state)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  skillmatch import --source <id> [--taxonomy-dir <dir>]")
	fmt.Fprintln(w, "  skillmatch import --all [--taxonomy-dir <dir>]")
	fmt.Fprintln(w, "  skillmatch import --source <id> --set-url <url>")
}
