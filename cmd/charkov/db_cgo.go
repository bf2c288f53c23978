//go:build cgo_sqlite

package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

// initDB opens the database with the cgo driver, translating the config's
// pragma parameters to its _journal_mode=WAL&_busy_timeout=5000 form.
func initDB(dataSource string) (*sql.DB, error) {
	return sql.Open(driverName, mattnDSN(dataSource))
}
