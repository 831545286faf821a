// CLAUDE:SUMMARY One-shot CLI subcommands: match a résumé file against a job file, categorize a text or file; JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hazyhaar/skillmatch/pkg/document"
	"github.com/hazyhaar/skillmatch/pkg/skills"
)

func cmdMatch(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	resumePath := fs.String("resume", "", "résumé file (pdf, docx or text)")
	jobPath := fs.String("job", "", "job description file")
	taxDir := fs.String("taxonomy", "", "taxonomy directory (default: built-in)")
	fs.Parse(args)

	if *resumePath == "" || *jobPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: skillmatch match -resume <file> -job <file> [-taxonomy <dir>]")
		os.Exit(1)
	}

	eng := skills.NewEngine(mustLoadRegistry(*taxDir))
	if err := runMatch(context.Background(), os.Stdout, eng, *resumePath, *jobPath); err != nil {
		exitWith(err)
	}
}

func runMatch(ctx context.Context, w io.Writer, eng *skills.Engine, resumePath, jobPath string) error {
	resume, err := document.ReadFile(ctx, resumePath)
	if err != nil {
		return err
	}
	job, err := document.ReadFile(ctx, jobPath)
	if err != nil {
		return err
	}
	report, err := eng.Compare(resume, job)
	if err != nil {
		return err
	}
	return printJSON(w, report)
}

func cmdCategorize(args []string) {
	fs := flag.NewFlagSet("categorize", flag.ExitOnError)
	text := fs.String("text", "", "text to analyze")
	file := fs.String("file", "", "file to analyze (pdf, docx or text)")
	taxDir := fs.String("taxonomy", "", "taxonomy directory (default: built-in)")
	fs.Parse(args)

	if (*text == "") == (*file == "") {
		fmt.Fprintln(os.Stderr, "Usage: skillmatch categorize -text <string> | -file <file> [-taxonomy <dir>]")
		os.Exit(1)
	}

	eng := skills.NewEngine(mustLoadRegistry(*taxDir))
	if err := runCategorize(context.Background(), os.Stdout, eng, *text, *file); err != nil {
		exitWith(err)
	}
}

func runCategorize(ctx context.Context, w io.Writer, eng *skills.Engine, text, file string) error {
	if file != "" {
		var err error
		if text, err = document.ReadFile(ctx, file); err != nil {
			return err
		}
	}
	analysis, err := eng.Analyze(text)
	if err != nil {
		return err
	}
	return printJSON(w, analysis)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitWith(err error) {
	var xerr *document.ExtractError
	if errors.As(err, &xerr) {
		fmt.Fprintf(os.Stderr, "could not read document: %v\n", xerr)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
