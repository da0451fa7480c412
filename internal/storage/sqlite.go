package storage

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/savebridge"
)

// SQLite keeps named blobs in a single database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at dbPath and runs migrations.
func OpenSQLite(dbPath string) (*SQLite, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS files (
			name TEXT PRIMARY KEY,
			data BLOB,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) Stat(name string) (savebridge.FileInfo, error) {
	var size int64
	err := s.db.QueryRow("SELECT coalesce(length(data), 0) FROM files WHERE name = ?", name).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return savebridge.FileInfo{}, fmt.Errorf("storage: %s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return savebridge.FileInfo{}, fmt.Errorf("storage: stat %s: %w", name, err)
	}
	return savebridge.FileInfo{Name: name, Size: size}, nil
}

// Open reads the whole blob up front for Read; for Write the row is
// replaced when the file is closed.
func (s *SQLite) Open(name string, mode savebridge.Mode) (savebridge.File, error) {
	if mode == savebridge.Write {
		return &sqliteFile{db: s.db, name: name, w: new(bytes.Buffer)}, nil
	}
	var data []byte
	err := s.db.QueryRow("SELECT data FROM files WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: %s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return &sqliteFile{name: name, r: bytes.NewReader(data)}, nil
}

// List returns the stored names ending in ext, sorted by name.
func (s *SQLite) List(ext string) ([]savebridge.FileInfo, error) {
	rows, err := s.db.Query(
		"SELECT name, coalesce(length(data), 0) FROM files WHERE substr(name, -length(?)) = ? ORDER BY name",
		ext, ext,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	defer rows.Close()

	var out []savebridge.FileInfo
	for rows.Next() {
		var fi savebridge.FileInfo
		if err := rows.Scan(&fi.Name, &fi.Size); err != nil {
			return nil, fmt.Errorf("storage: list scan: %w", err)
		}
		out = append(out, fi)
	}
	return out, rows.Err()
}

type sqliteFile struct {
	db     *sql.DB
	name   string
	r      *bytes.Reader
	w      *bytes.Buffer
	closed bool
}

func (f *sqliteFile) Read(p []byte) (int, error) {
	if f.r == nil {
		return 0, fmt.Errorf("storage: %s opened for write", f.name)
	}
	return f.r.Read(p)
}

func (f *sqliteFile) Write(p []byte) (int, error) {
	if f.w == nil {
		return 0, fmt.Errorf("storage: %s opened for read", f.name)
	}
	return f.w.Write(p)
}

func (f *sqliteFile) Close() error {
	if f.closed || f.w == nil {
		f.closed = true
		return nil
	}
	f.closed = true
	_, err := f.db.Exec(
		`INSERT INTO files (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		f.name, f.w.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("storage: write %s: %w", f.name, err)
	}
	return nil
}
