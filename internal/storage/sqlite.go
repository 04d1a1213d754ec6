package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStore implements service.Store on a local SQLite database. Folders,
// tables and documents are addressed by generated ids the same way the
// Google backend addresses Drive files.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger *slog.Logger
	now    func() time.Time
}

var _ service.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	dsn := MemoryPath
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serializes appends and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// CreateFolder creates a folder under parentID and returns its id.
func (s *SQLiteStore) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	if err := validateString(name, "name"); err != nil {
		return "", err
	}
	if err := s.requireFolder(ctx, s.db, parentID); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (id, parent_id, name, created_at) VALUES (?, ?, ?, ?)`,
		id, nullable(parentID), name, s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", name, err)
	}

	s.logger.Debug("created folder", "id", id, "name", name)
	return id, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// requireFolder fails with common.ErrNotFound when parentID names no folder.
// An empty parentID means the root and always exists.
func (s *SQLiteStore) requireFolder(ctx context.Context, q queryer, parentID string) error {
	if parentID == "" {
		return nil
	}
	var id string
	err := q.QueryRowContext(ctx, `SELECT id FROM folders WHERE id = ?`, parentID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("folder %s: %w", parentID, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up folder %s: %w", parentID, err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
