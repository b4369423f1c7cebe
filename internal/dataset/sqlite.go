// sqlite.go snapshots a loaded dataset into an on-disk SQLite database and
// reads such snapshots back.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	createLaunchesTableStmt = `
CREATE TABLE IF NOT EXISTS launches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    launch_site TEXT NOT NULL,
    payload_mass_kg REAL NOT NULL,
    booster_version_category TEXT NOT NULL,
    class INTEGER NOT NULL CHECK (class IN (0, 1))
);`
	createLaunchesIndexStmt = `CREATE INDEX IF NOT EXISTS idx_launches_site ON launches(launch_site);`
	insertLaunchStmt        = `INSERT INTO launches(launch_site, payload_mass_kg, booster_version_category, class) VALUES(?, ?, ?, ?)`
	selectLaunchesStmt      = `SELECT launch_site, payload_mass_kg, booster_version_category, class FROM launches ORDER BY id`
)

// WriteSQLite persists ds to a launches table at path, replacing any rows
// already stored there.
func WriteSQLite(ctx context.Context, path string, ds *Dataset) (err error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return errors.New("sqlite path cannot be empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	dir := filepath.Dir(p)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	db, err := openSQLite(p)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, createLaunchesTableStmt); err != nil {
		return fmt.Errorf("ensure launches table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createLaunchesIndexStmt); err != nil {
		return fmt.Errorf("ensure launches index: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sqlite transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM launches`); err != nil {
		return fmt.Errorf("clear launches: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertLaunchStmt)
	if err != nil {
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()
	var insertErr error
	ds.Each(func(rec LaunchRecord) {
		if insertErr != nil {
			return
		}
		_, insertErr = stmt.ExecContext(ctx, rec.LaunchSite, rec.PayloadMassKg, rec.BoosterVersionCategory, rec.OutcomeClass)
	})
	if insertErr != nil {
		return fmt.Errorf("insert launch: %w", insertErr)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit launches: %w", err)
	}
	return nil
}

// LoadSQLite reads a snapshot written by WriteSQLite, in insertion order.
func LoadSQLite(ctx context.Context, path string) (*Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Op: "open", Err: err}
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "open", Err: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectLaunchesStmt)
	if err != nil {
		if strings.Contains(err.Error(), "no such") {
			return nil, &LoadError{Path: path, Op: "query launches", Err: fmt.Errorf("%w: %v", ErrMissingColumn, err)}
		}
		return nil, &LoadError{Path: path, Op: "query launches", Err: err}
	}
	defer rows.Close()

	var records []LaunchRecord
	for rows.Next() {
		var rec LaunchRecord
		if err := rows.Scan(&rec.LaunchSite, &rec.PayloadMassKg, &rec.BoosterVersionCategory, &rec.OutcomeClass); err != nil {
			return nil, &LoadError{Path: path, Op: "scan launch", Err: fmt.Errorf("%w: %v", ErrMalformedValue, err)}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Path: path, Op: "read launches", Err: err}
	}
	ds := &Dataset{records: records}
	ds.index()
	return ds, nil
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}
