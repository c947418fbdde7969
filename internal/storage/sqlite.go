// ABOUTME: SQLite storage implementation for saved profiles
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harper/astro/internal/models"
	_ "modernc.org/sqlite"
)

// DBFilename is the database file created inside the data directory.
const DBFilename = "astro.db"

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// NewSQLiteDB creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates or updates the database schema.
func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			born_at DATETIME NOT NULL,
			latitude REAL,
			longitude REAL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_profiles_born_at ON profiles(born_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteDB) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset clears all data from the database.
func (s *SQLiteDB) Reset() error {
	_, err := s.db.Exec("DELETE FROM profiles;")
	return err
}

// CreateProfile stores a new profile. Names must be unique.
func (s *SQLiteDB) CreateProfile(p *models.Profile) error {
	if _, err := s.GetProfileByName(p.Name); err == nil {
		return fmt.Errorf("profile %q: %w", p.Name, ErrDuplicate)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err := s.db.Exec(
		`INSERT INTO profiles (id, name, born_at, latitude, longitude, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.BornAt.UTC(), p.Latitude, p.Longitude, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by its UUID.
func (s *SQLiteDB) GetProfile(id uuid.UUID) (*models.Profile, error) {
	row := s.db.QueryRow(
		`SELECT id, name, born_at, latitude, longitude, created_at
		 FROM profiles WHERE id = ?`,
		id.String(),
	)
	return s.scanProfile(row)
}

// GetProfileByName retrieves a profile by its name.
func (s *SQLiteDB) GetProfileByName(name string) (*models.Profile, error) {
	row := s.db.QueryRow(
		`SELECT id, name, born_at, latitude, longitude, created_at
		 FROM profiles WHERE name = ?`,
		name,
	)
	return s.scanProfile(row)
}

// ListProfiles returns all profiles sorted by name.
func (s *SQLiteDB) ListProfiles() ([]*models.Profile, error) {
	rows, err := s.db.Query(
		`SELECT id, name, born_at, latitude, longitude, created_at
		 FROM profiles ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := s.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// UpdateProfile replaces the stored birth data of an existing profile.
func (s *SQLiteDB) UpdateProfile(p *models.Profile) error {
	res, err := s.db.Exec(
		`UPDATE profiles SET name = ?, born_at = ?, latitude = ?, longitude = ? WHERE id = ?`,
		p.Name, p.BornAt.UTC(), p.Latitude, p.Longitude, p.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireAffected(res)
}

// DeleteProfile removes a profile.
func (s *SQLiteDB) DeleteProfile(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM profiles WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteDB) scanProfile(row scanner) (*models.Profile, error) {
	var idStr string
	var p models.Profile
	err := row.Scan(&idStr, &p.Name, &p.BornAt, &p.Latitude, &p.Longitude, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.ID, _ = uuid.Parse(idStr)
	p.BornAt = p.BornAt.UTC()
	return &p, nil
}
