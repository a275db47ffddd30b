package db

import (
	"github.com/mattn/go-sqlite3"

	"github.com/teranos/sdlppx/errors"
)

// IsNotADatabase checks if err is SQLite rejecting a file without a SQLite header.
// Access termbases fail this way.
func IsNotADatabase(err error) bool {
	return hasCode(err, sqlite3.ErrNotADB)
}

// IsBusy checks if err is SQLite giving up on a store locked by another process
func IsBusy(err error) bool {
	return hasCode(err, sqlite3.ErrBusy) || hasCode(err, sqlite3.ErrLocked)
}

func hasCode(err error, code sqlite3.ErrNo) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == code
	}
	return false
}
