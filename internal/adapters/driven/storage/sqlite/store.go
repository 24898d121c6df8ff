package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/marcfields/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is a SQLite-backed record store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.marcfields/data/records.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".marcfields", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "records.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Writers from the batch worker pool share one connection.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_records.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// WriteRecord stores or replaces a record and all of its field values.
func (s *Store) WriteRecord(ctx context.Context, rec *domain.IndexedRecord) error {
	if rec == nil || rec.ID == "" {
		return domain.ErrInvalidInput
	}
	indexedAt := rec.IndexedAt
	if indexedAt.IsZero() {
		indexedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (id, batch_id, uri, format, indexed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			batch_id = excluded.batch_id,
			uri = excluded.uri,
			format = excluded.format,
			indexed_at = excluded.indexed_at
	`, rec.ID, rec.BatchID, rec.URI, rec.Format, indexedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM record_fields WHERE record_id = ?", rec.ID); err != nil {
		return fmt.Errorf("clearing fields: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO record_fields (record_id, field_pos, value_pos, name, value)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing field insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range rec.Fields {
		for j, v := range f.Values {
			if _, err := stmt.ExecContext(ctx, rec.ID, i, j, f.Name, v); err != nil {
				return fmt.Errorf("saving field %s: %w", f.Name, err)
			}
		}
	}

	return tx.Commit()
}

// Flush is a no-op; every WriteRecord commits its own transaction.
func (s *Store) Flush(_ context.Context) error {
	return nil
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (*domain.IndexedRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, batch_id, uri, format, indexed_at FROM records WHERE id = ?
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	if rec.Fields, err = s.fields(ctx, id); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecords returns records for a batch, or all records when batchID is empty,
// ordered by indexing time.
func (s *Store) ListRecords(ctx context.Context, batchID string) ([]domain.IndexedRecord, error) {
	query := "SELECT id, batch_id, uri, format, indexed_at FROM records"
	var args []any
	if batchID != "" {
		query += " WHERE batch_id = ?"
		args = append(args, batchID)
	}
	query += " ORDER BY indexed_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var result []domain.IndexedRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	for i := range result {
		if result[i].Fields, err = s.fields(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// DeleteRecord removes a record and its fields.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByField returns the IDs of records holding value in the named field.
func (s *Store) FindByField(ctx context.Context, name, value string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT record_id FROM record_fields
		WHERE name = ? AND value = ?
		ORDER BY record_id
	`, name, value)
	if err != nil {
		return nil, fmt.Errorf("finding records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning record id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// fields rebuilds a record's ordered fields.
func (s *Store) fields(ctx context.Context, recordID string) (domain.Fields, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT field_pos, name, value FROM record_fields
		WHERE record_id = ?
		ORDER BY field_pos, value_pos
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("getting fields: %w", err)
	}
	defer rows.Close()

	var fs domain.Fields
	last := -1
	for rows.Next() {
		var pos int
		var name, value string
		if err := rows.Scan(&pos, &name, &value); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		if pos != last {
			fs = append(fs, domain.Field{Name: name})
			last = pos
		}
		fs[len(fs)-1].Values = append(fs[len(fs)-1].Values, value)
	}
	return fs, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.IndexedRecord, error) {
	var rec domain.IndexedRecord
	var indexedAt string
	if err := row.Scan(&rec.ID, &rec.BatchID, &rec.URI, &rec.Format, &indexedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, indexedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing indexed_at: %w", err)
	}
	rec.IndexedAt = t
	return &rec, nil
}
