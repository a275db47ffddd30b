package db

import (
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/logger"
)

// SQLiteBusyTimeoutMS bounds how long a read waits on a store locked by Trados Studio
const SQLiteBusyTimeoutMS = 5000

// OpenStore opens an SDL store (.sdltm or .sdltb) read-only.
// A missing file is reported as ErrMissingInput; a file that is not SQLite
// (for example a Microsoft Access termbase) fails with a hint instead of
// surfacing a driver error on the first query.
func OpenStore(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	log = logger.OrNop(log)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputf("store %s does not exist", path)
		}
		return nil, errors.Wrapf(err, "failed to stat store %s", path)
	}

	log.Debugw("Opening store", logger.FieldStore, path)

	db, err := sql.Open("sqlite3", storeDSN(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open store %s", path)
	}

	// Open is lazy; force the header read so non-SQLite files fail here
	var schemaVersion int
	if err := db.QueryRow("PRAGMA schema_version").Scan(&schemaVersion); err != nil {
		db.Close()
		switch {
		case IsBusy(err):
			return nil, errors.WithHint(
				errors.Wrapf(err, "store %s is locked", path),
				"close the store in Trados Studio and retry",
			)
		case IsNotADatabase(err):
			return nil, errors.WithHint(
				errors.Wrapf(err, "store %s is not a readable SQLite database", path),
				"termbases saved in the Microsoft Access format must be converted to SQLite first",
			)
		default:
			return nil, errors.Wrapf(err, "failed to read store %s", path)
		}
	}

	log.Debugw("Store opened", logger.FieldStore, path, "schema_version", schemaVersion)
	return db, nil
}

// RequireTables verifies that every named table exists in the store
func RequireTables(db *sql.DB, tables ...string) error {
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err == sql.ErrNoRows {
			return errors.NewMissingInputf("store has no %s table", table)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to look up table %s", table)
		}
	}
	return nil
}

// storeDSN builds a file: URI for path. The path is escaped so names holding
// '#', '?' or '%' reach SQLite intact and mode=ro stays in the query.
func storeDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_busy_timeout", strconv.Itoa(SQLiteBusyTimeoutMS))
	u := url.URL{Scheme: "file", Path: path, RawQuery: q.Encode()}
	return u.String()
}
