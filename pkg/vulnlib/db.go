package vulnlib

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var ErrDatabaseNotFound = errors.New("database not found")

const cveTable = `CREATE TABLE IF NOT EXISTS cves (
	"ID" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
	"GAV" TEXT NOT NULL,
	"CVEID" TEXT NOT NULL,
	UNIQUE("GAV", "CVEID"));`

// OpenDB opens the mirror at path, creating an empty one if the file
// does not exist yet.
func OpenDB(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if !exists(dir) {
		if err := os.MkdirAll(dir, os.FileMode(0755)); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec(cveTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init %s: %v", path, err)
	}

	return &DB{DB: db, Store: path}, nil
}

// OpenDBReadOnly opens an existing mirror for lookups. Unlike OpenDB it
// never creates the file, so a mistyped path is an error rather than an
// empty database that reports every dependency clean.
func OpenDBReadOnly(path string) (*DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("the database %s does not exist: %w", path, ErrDatabaseNotFound)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}

	// a file that is not a mirror has no cves table
	if _, err = db.Exec(`SELECT 1 FROM cves LIMIT 1`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	return &DB{DB: db, Store: path}, nil
}

func (cli *DB) Close() error {
	return cli.DB.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Insert records the CVE identifiers of one GAV. Duplicates are ignored.
func (cli *DB) Insert(ctx context.Context, gav string, cveIDs ...string) error {
	return insert(ctx, cli.DB, gav, cveIDs)
}

func insert(ctx context.Context, ex execer, gav string, cveIDs []string) error {
	sqlRow := `INSERT OR IGNORE INTO cves ("GAV", "CVEID") VALUES (?, ?)`

	for _, id := range cveIDs {
		if _, err := ex.ExecContext(ctx, sqlRow, gav, id); err != nil {
			return err
		}
	}

	return nil
}

func (cli *DB) QueryByGAV(ctx context.Context, gav string) ([]*DBRow, error) {
	dbRows := []*DBRow{}

	sqlRow := `SELECT "ID", "GAV", "CVEID" FROM cves WHERE "GAV" = ? ORDER BY "CVEID"`
	rows, err := cli.DB.QueryContext(ctx, sqlRow, gav)
	if err != nil {
		return dbRows, err
	}

	defer rows.Close()

	for rows.Next() {
		r := &DBRow{}
		if err = rows.Scan(&r.Id, &r.GAV, &r.CVEID); err != nil {
			return dbRows, err
		}

		dbRows = append(dbRows, r)
	}

	if err = rows.Err(); err != nil {
		return dbRows, err
	}

	return dbRows, nil
}

// Lookup satisfies Lookuper from the local mirror
func (cli *DB) Lookup(ctx context.Context, gav string) ([]string, error) {
	rows, err := cli.QueryByGAV(ctx, gav)
	if err != nil {
		return nil, err
	}

	cves := []string{}
	for _, r := range rows {
		cves = append(cves, r.CVEID)
	}

	return cves, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
