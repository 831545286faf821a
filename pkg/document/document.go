// Package document turns uploaded résumé files into plain text.
//
// It is the only place where file formats are understood. Callers receive
// either text or an *ExtractError, so a failed extraction is never confused
// with a document that simply contains no skills.
package document

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies a supported document format.
type Kind string

const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ExtractError reports a document whose text could not be extracted.
type ExtractError struct {
	Name string
	Kind Kind
	Err  error
}

func (e *ExtractError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("extract %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("extract %s (%s): %v", e.Name, e.Kind, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// Detect picks the document kind from the declared MIME type, then the file
// extension, then the content itself.
func Detect(name, mimeType string, data []byte) (Kind, error) {
	if mimeType != "" {
		mt, _, err := mime.ParseMediaType(mimeType)
		if err == nil {
			switch mt {
			case "text/plain", "text/markdown":
				return KindText, nil
			case "application/pdf":
				return KindPDF, nil
			case docxMIME:
				return KindDOCX, nil
			}
		}
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".text":
		return KindText, nil
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	}

	sniffed := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(sniffed, "text/plain"):
		return KindText, nil
	case sniffed == "application/pdf":
		return KindPDF, nil
	case sniffed == "application/zip":
		return KindDOCX, nil
	}
	return "", fmt.Errorf("unsupported file type: %s", sniffed)
}

// Extract returns the plain text of a document.
func Extract(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &ExtractError{Name: name, Err: fmt.Errorf("empty document")}
	}

	kind, err := Detect(name, mimeType, data)
	if err != nil {
		return "", &ExtractError{Name: name, Err: err}
	}

	var text string
	switch kind {
	case KindText:
		text = string(data)
	case KindPDF:
		text, err = extractPDF(data)
	case KindDOCX:
		text, err = extractDOCX(data)
	}
	if err != nil {
		return "", &ExtractError{Name: name, Kind: kind, Err: err}
	}
	return text, nil
}

// ReadFile reads a local file and extracts its text.
func ReadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractError{Name: filepath.Base(path), Err: err}
	}
	return Extract(ctx, filepath.Base(path), "", data)
}
