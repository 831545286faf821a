// CLAUDE:SUMMARY SQLite ledger of skill sources: URL per adapter, the revision last imported into its category, the last availability check.
package importer

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Revision identifies what a source served at one point in time, as seen by
// an import or by a check. ETag and LastModified are copied from the response.
type Revision struct {
	At           time.Time
	ETag         string
	LastModified string
}

// Import is the record of the last successful import of a source.
type Import struct {
	Revision
	Skills int
}

// Check is the record of the last availability check of a source.
type Check struct {
	Revision
	Status int
	Err    string
}

// Source is one skill source feeding a taxonomy category.
type Source struct {
	AdapterID  string
	CategoryID string
	SourceURL  string
	License    string
	Imported   *Import // nil until imported from SourceURL
	Checked    *Check  // nil until checked
}

// Changed reports whether the last check saw a different revision than the
// one imported. Without a validator on both sides nothing can be told.
func (s Source) Changed() bool {
	if s.Imported == nil || s.Checked == nil || s.Checked.Status != 200 {
		return false
	}
	imp, chk := s.Imported.Revision, s.Checked.Revision
	if imp.ETag != "" && chk.ETag != "" {
		return imp.ETag != chk.ETag
	}
	if imp.LastModified != "" && chk.LastModified != "" {
		return imp.LastModified != chk.LastModified
	}
	return false
}

// SourceDB stores the skill_sources table.
type SourceDB struct {
	db *sql.DB
}

// OpenSourceDB opens (or creates) the SQLite database at path.
func OpenSourceDB(path string) (*SourceDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open source db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS skill_sources (
		adapter_id             TEXT PRIMARY KEY,
		category_id            TEXT NOT NULL,
		source_url             TEXT NOT NULL,
		license                TEXT NOT NULL DEFAULT '',
		imported_at            INTEGER,
		imported_skills        INTEGER,
		imported_etag          TEXT,
		imported_last_modified TEXT,
		checked_at             INTEGER,
		check_status           INTEGER,
		check_etag             TEXT,
		check_last_modified    TEXT,
		check_error            TEXT
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create skill_sources table: %w", err)
	}
	return &SourceDB{db: db}, nil
}

// Close closes the SQLite connection.
func (s *SourceDB) Close() error {
	return s.db.Close()
}

// Seed registers every adapter. The category and license follow the adapter;
// a stored URL is kept so that SetURL overrides survive restarts.
func (s *SourceDB) Seed(adapters []Adapter) error {
	const q = `INSERT INTO skill_sources (adapter_id, category_id, source_url, license)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(adapter_id) DO UPDATE SET
			category_id = excluded.category_id,
			license = excluded.license`
	for _, a := range adapters {
		if _, err := s.db.Exec(q, a.ID(), a.CategoryID(), a.DefaultURL(), a.License()); err != nil {
			return fmt.Errorf("seed %s: %w", a.ID(), err)
		}
	}
	return nil
}

// GetURL returns the current source URL of an adapter.
func (s *SourceDB) GetURL(adapterID string) (string, error) {
	var url string
	err := s.db.QueryRow(`SELECT source_url FROM skill_sources WHERE adapter_id = ?`, adapterID).Scan(&url)
	if err != nil {
		return "", fmt.Errorf("get url for %s: %w", adapterID, err)
	}
	return url, nil
}

// SetURL points an adapter at a new URL. The import record is cleared since it
// described the previous URL.
func (s *SourceDB) SetURL(adapterID, url string) error {
	res, err := s.db.Exec(`UPDATE skill_sources SET source_url = ?,
		imported_at = NULL, imported_skills = NULL, imported_etag = NULL, imported_last_modified = NULL
		WHERE adapter_id = ?`, url, adapterID)
	if err != nil {
		return fmt.Errorf("set url for %s: %w", adapterID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unknown source %s", adapterID)
	}
	return nil
}

// RecordImport stores the result of a successful import.
func (s *SourceDB) RecordImport(adapterID string, imp Import) error {
	if imp.At.IsZero() {
		imp.At = time.Now()
	}
	res, err := s.db.Exec(`UPDATE skill_sources SET imported_at = ?, imported_skills = ?,
		imported_etag = ?, imported_last_modified = ? WHERE adapter_id = ?`,
		imp.At.Unix(), imp.Skills, nullable(imp.ETag), nullable(imp.LastModified), adapterID)
	if err != nil {
		return fmt.Errorf("record import for %s: %w", adapterID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unknown source %s", adapterID)
	}
	return nil
}

// RecordCheck stores the result of an availability check.
func (s *SourceDB) RecordCheck(adapterID string, c Check) error {
	if c.At.IsZero() {
		c.At = time.Now()
	}
	_, err := s.db.Exec(`UPDATE skill_sources SET checked_at = ?, check_status = ?,
		check_etag = ?, check_last_modified = ?, check_error = ? WHERE adapter_id = ?`,
		c.At.Unix(), c.Status, nullable(c.ETag), nullable(c.LastModified), nullable(c.Err), adapterID)
	if err != nil {
		return fmt.Errorf("record check for %s: %w", adapterID, err)
	}
	return nil
}

const sourceColumns = `adapter_id, category_id, source_url, license,
	imported_at, imported_skills, imported_etag, imported_last_modified,
	checked_at, check_status, check_etag, check_last_modified, check_error`

// Get returns one source.
func (s *SourceDB) Get(adapterID string) (Source, error) {
	row := s.db.QueryRow(`SELECT `+sourceColumns+` FROM skill_sources WHERE adapter_id = ?`, adapterID)
	src, err := scanSource(row)
	if err != nil {
		return Source{}, fmt.Errorf("get source %s: %w", adapterID, err)
	}
	return src, nil
}

// ListSources returns all sources ordered by adapter id.
func (s *SourceDB) ListSources() ([]Source, error) {
	rows, err := s.db.Query(`SELECT ` + sourceColumns + ` FROM skill_sources ORDER BY adapter_id`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSource(sc scanner) (Source, error) {
	var (
		src                              Source
		impAt, impSkills, chkAt, chkCode sql.NullInt64
		impETag, impLM                   sql.NullString
		chkETag, chkLM, chkErr           sql.NullString
	)
	if err := sc.Scan(&src.AdapterID, &src.CategoryID, &src.SourceURL, &src.License,
		&impAt, &impSkills, &impETag, &impLM,
		&chkAt, &chkCode, &chkETag, &chkLM, &chkErr); err != nil {
		return src, err
	}
	if impAt.Valid {
		src.Imported = &Import{
			Revision: Revision{At: time.Unix(impAt.Int64, 0), ETag: impETag.String, LastModified: impLM.String},
			Skills:   int(impSkills.Int64),
		}
	}
	if chkAt.Valid {
		src.Checked = &Check{
			Revision: Revision{At: time.Unix(chkAt.Int64, 0), ETag: chkETag.String, LastModified: chkLM.String},
			Status:   int(chkCode.Int64),
			Err:      chkErr.String,
		}
	}
	return src, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
