package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// openMemory opens a private in-memory sqlite database. The name is unique
// per call so separate journals never share state.
func openMemory() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:journal-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// the database disappears with its last connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// now returns UTC time truncated to milliseconds.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
