package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/urlfeature/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "urlfeature.db"

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// FeatureDB stores extraction runs and their feature vectors in SQLite.
type FeatureDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures FeatureDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a FeatureDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error
// wrapping os.ErrNotExist is returned.
func Open(dbDir string, opts Options) (*FeatureDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	fdb := &FeatureDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := fdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return fdb, nil
}

// Path returns the database file path.
func (fdb *FeatureDB) Path() string {
	return fdb.dbPath
}

// Close closes the database connection.
func (fdb *FeatureDB) Close() error {
	return fdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (fdb *FeatureDB) createTables() error {
	schema := `
	-- One row per extraction run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		source TEXT NOT NULL,
		url_count INTEGER NOT NULL,
		ref_digest TEXT,
		columns_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- Table rows of a run, features and label as a JSON array
	CREATE TABLE IF NOT EXISTS vectors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		url TEXT,
		row_json TEXT NOT NULL,
		UNIQUE(run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_vectors_url ON vectors(url);
	`

	_, err := fdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata describes a saved run without its rows.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64 `json:"id"`

	// Timestamp is when the run was saved.
	Timestamp time.Time `json:"timestamp"`

	// Source describes where the URLs came from.
	Source string `json:"source"`

	// URLCount is the number of rows.
	URLCount int `json:"urlCount"`

	// RefDigest identifies the reference sets used for the run.
	RefDigest string `json:"refDigest,omitempty"`
}

// SaveRun stores a table as a new run and returns its ID.
// The run and all its rows are written in one transaction.
func (fdb *FeatureDB) SaveRun(ctx context.Context, source, refDigest string, t *model.Table) (id int64, err error) {
	columnsJSON, err := json.Marshal(t.Columns)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize columns: %w", err)
	}

	tx, err := fdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (source, url_count, ref_digest, columns_json)
	VALUES (?, ?, ?, ?)
	`, source, t.Len(), refDigest, string(columnsJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO vectors (run_id, position, url, row_json)
	VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare vector insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		rowJSON, err := json.Marshal(row)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, nullString(t.URL(i)), string(rowJSON)); err != nil {
			return 0, fmt.Errorf("failed to save row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns the metadata of all runs, newest first.
func (fdb *FeatureDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	rows, err := fdb.db.QueryContext(ctx, `
	SELECT id, timestamp, source, url_count, ref_digest
	FROM runs
	ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// GetRun returns the metadata of one run.
func (fdb *FeatureDB) GetRun(ctx context.Context, id int64) (*RunMetadata, error) {
	row := fdb.db.QueryRowContext(ctx, `
	SELECT id, timestamp, source, url_count, ref_digest
	FROM runs
	WHERE id = ?
	`, id)

	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetRunTable rebuilds the table saved by a run.
func (fdb *FeatureDB) GetRunTable(ctx context.Context, id int64) (*model.Table, error) {
	var columnsJSON string
	err := fdb.db.QueryRowContext(ctx, `SELECT columns_json FROM runs WHERE id = ?`, id).Scan(&columnsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	t := &model.Table{}
	if err := json.Unmarshal([]byte(columnsJSON), &t.Columns); err != nil {
		return nil, fmt.Errorf("failed to parse columns: %w", err)
	}

	rows, err := fdb.db.QueryContext(ctx, `
	SELECT url, row_json FROM vectors
	WHERE run_id = ?
	ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run rows: %w", err)
	}
	defer rows.Close()

	var (
		urls   []string
		hasURL bool
	)
	for rows.Next() {
		var url sql.NullString
		var rowJSON string
		if err := rows.Scan(&url, &rowJSON); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var row []float64
		if err := json.Unmarshal([]byte(rowJSON), &row); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		t.Rows = append(t.Rows, row)
		urls = append(urls, url.String)
		hasURL = hasURL || url.Valid
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if hasURL {
		t.URLs = urls
	}
	return t, nil
}

// URLRecord is one saved vector of a URL.
type URLRecord struct {
	RunID     int64               `json:"runId"`
	Timestamp time.Time           `json:"timestamp"`
	RefDigest string              `json:"refDigest,omitempty"`
	Vector    model.FeatureVector `json:"features"`
}

// FindURL returns every saved vector of url, newest run first. Comparing
// records with different RefDigest values shows how a reference-set change
// moved domain_top or domain_level.
func (fdb *FeatureDB) FindURL(ctx context.Context, url string) ([]URLRecord, error) {
	rows, err := fdb.db.QueryContext(ctx, `
	SELECT r.id, r.timestamp, r.ref_digest, v.row_json
	FROM vectors v JOIN runs r ON r.id = v.run_id
	WHERE v.url = ?
	ORDER BY r.id DESC, v.position
	`, url)
	if err != nil {
		return nil, fmt.Errorf("failed to find url: %w", err)
	}
	defer rows.Close()

	var records []URLRecord
	for rows.Next() {
		var (
			rec       URLRecord
			timestamp string
			digest    sql.NullString
			rowJSON   string
		)
		if err := rows.Scan(&rec.RunID, &timestamp, &digest, &rowJSON); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Timestamp = parseTimestamp(timestamp)
		rec.RefDigest = digest.String

		var row []float64
		if err := json.Unmarshal([]byte(rowJSON), &row); err != nil {
			continue // Skip malformed rows
		}
		copy(rec.Vector[:], row)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteRun removes a run and its rows.
func (fdb *FeatureDB) DeleteRun(ctx context.Context, id int64) (err error) {
	tx, err := fdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM vectors WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete rows: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		err = fmt.Errorf("%w: %d", ErrRunNotFound, id)
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunMetadata, error) {
	var (
		meta      RunMetadata
		timestamp string
		digest    sql.NullString
	)
	if err := row.Scan(&meta.ID, &timestamp, &meta.Source, &meta.URLCount, &digest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meta, err
		}
		return meta, fmt.Errorf("failed to scan run: %w", err)
	}
	meta.Timestamp = parseTimestamp(timestamp)
	meta.RefDigest = digest.String
	return meta, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp tries each of timestampFormats and returns the zero time
// when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
