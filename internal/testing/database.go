package testing

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// TMHeader is one row of the translation_memories table
type TMHeader struct {
	Name           string
	SourceLanguage string
	UnitCount      int
}

// TMUnit is one row of the translation_units table
type TMUnit struct {
	ID     int
	Source string
	Target string
}

// TBRow is one row of the mtConcepts table
type TBRow struct {
	ConceptID int
	Text      string
}

// CreateTMStore writes a translation memory store at path with the given rows
func CreateTMStore(t *testing.T, path string, headers []TMHeader, units []TMUnit) {
	t.Helper()

	db := createFile(t, path)
	defer db.Close()

	mustExec(t, db, `CREATE TABLE translation_memories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		source_language TEXT NOT NULL,
		tucount INTEGER NOT NULL DEFAULT 0
	)`)
	mustExec(t, db, `CREATE TABLE translation_units (
		id INTEGER PRIMARY KEY,
		source_segment TEXT,
		target_segment TEXT
	)`)

	for _, h := range headers {
		mustExec(t, db, "INSERT INTO translation_memories (name, source_language, tucount) VALUES (?, ?, ?)",
			h.Name, h.SourceLanguage, h.UnitCount)
	}
	for _, u := range units {
		mustExec(t, db, "INSERT INTO translation_units (id, source_segment, target_segment) VALUES (?, ?, ?)",
			u.ID, u.Source, u.Target)
	}
}

// CreateTBStore writes a termbase store at path in the mtConcepts layout
func CreateTBStore(t *testing.T, path string, rows []TBRow) {
	t.Helper()

	db := createFile(t, path)
	defer db.Close()

	mustExec(t, db, "CREATE TABLE mtConcepts (conceptid INTEGER PRIMARY KEY, text TEXT)")
	for _, r := range rows {
		mustExec(t, db, "INSERT INTO mtConcepts (conceptid, text) VALUES (?, ?)", r.ConceptID, r.Text)
	}
}

func createFile(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to create store %s: %v", path, err)
	}
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...interface{}) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("Failed to execute %q: %v", query, err)
	}
}
