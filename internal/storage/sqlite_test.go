// ABOUTME: Tests for SQLite storage implementation
// ABOUTME: Covers all repository interface methods with real database

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/astro/internal/models"
)

// testDB creates a temporary database for testing.
func testDB(t *testing.T) *SQLiteDB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := NewSQLiteDB(dbPath)
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func fptr(f float64) *float64 { return &f }

var darpanBirth = time.Date(1986, 12, 22, 8, 34, 0, 0, time.UTC)

func TestNewSQLiteDB(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := NewSQLiteDB(dbPath)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if db.Path() != dbPath {
		t.Errorf("got path %s, want %s", db.Path(), dbPath)
	}
}

func TestNewSQLiteDB_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "nested", "path")
	dbPath := filepath.Join(nestedDir, "test.db")

	db, err := NewSQLiteDB(dbPath)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(nestedDir); os.IsNotExist(err) {
		t.Error("nested directory was not created")
	}
}

func TestCreateProfile(t *testing.T) {
	db := testDB(t)

	p := models.NewProfile("darpan", darpanBirth, fptr(28.6), fptr(77.2))
	if err := db.CreateProfile(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	got, err := db.GetProfile(p.ID)
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if got.Name != "darpan" {
		t.Errorf("got name %s, want darpan", got.Name)
	}
	if !got.BornAt.Equal(darpanBirth) {
		t.Errorf("got born_at %v, want %v", got.BornAt, darpanBirth)
	}
	if got.BornAt.Location() != time.UTC {
		t.Errorf("expected UTC born_at, got %v", got.BornAt.Location())
	}
	if got.Latitude == nil || *got.Latitude != 28.6 {
		t.Errorf("got latitude %v, want 28.6", got.Latitude)
	}
	if got.Longitude == nil || *got.Longitude != 77.2 {
		t.Errorf("got longitude %v, want 77.2", got.Longitude)
	}
}

func TestCreateProfile_NoLocation(t *testing.T) {
	db := testDB(t)

	p := models.NewProfile("nowhere", darpanBirth, nil, nil)
	if err := db.CreateProfile(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	got, err := db.GetProfileByName("nowhere")
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if got.Latitude != nil || got.Longitude != nil {
		t.Errorf("expected nil coordinates, got %v, %v", got.Latitude, got.Longitude)
	}
	if got.HasLocation() {
		t.Error("expected no location")
	}
}

func TestCreateProfile_DuplicateName(t *testing.T) {
	db := testDB(t)

	if err := db.CreateProfile(models.NewProfile("darpan", darpanBirth, nil, nil)); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	err := db.CreateProfile(models.NewProfile("darpan", time.Now(), nil, nil))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("got error %v, want ErrDuplicate", err)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetProfile(uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestGetProfileByName_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetProfileByName("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestListProfiles(t *testing.T) {
	db := testDB(t)

	for _, name := range []string{"zulu", "alpha", "mike"} {
		if err := db.CreateProfile(models.NewProfile(name, darpanBirth, nil, nil)); err != nil {
			t.Fatalf("failed to create profile: %v", err)
		}
	}

	profiles, err := db.ListProfiles()
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}

	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}

	expected := []string{"alpha", "mike", "zulu"}
	for i, p := range profiles {
		if p.Name != expected[i] {
			t.Errorf("profile %d: got name %s, want %s", i, p.Name, expected[i])
		}
	}
}

func TestListProfiles_Empty(t *testing.T) {
	db := testDB(t)

	profiles, err := db.ListProfiles()
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("got %d profiles, want 0", len(profiles))
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testDB(t)

	p := models.NewProfile("darpan", darpanBirth, nil, nil)
	if err := db.CreateProfile(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	p.Latitude = fptr(28.6)
	p.Longitude = fptr(77.2)
	p.BornAt = darpanBirth.Add(time.Hour)
	if err := db.UpdateProfile(p); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	got, err := db.GetProfile(p.ID)
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if !got.HasLocation() {
		t.Error("expected location after update")
	}
	if !got.BornAt.Equal(darpanBirth.Add(time.Hour)) {
		t.Errorf("got born_at %v", got.BornAt)
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	db := testDB(t)

	err := db.UpdateProfile(models.NewProfile("ghost", darpanBirth, nil, nil))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestDeleteProfile(t *testing.T) {
	db := testDB(t)

	p := models.NewProfile("darpan", darpanBirth, nil, nil)
	if err := db.CreateProfile(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := db.DeleteProfile(p.ID); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}

	_, err := db.GetProfile(p.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}

	if err := db.DeleteProfile(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v deleting twice, want ErrNotFound", err)
	}
}

func TestReset(t *testing.T) {
	db := testDB(t)

	for _, name := range []string{"a", "b"} {
		if err := db.CreateProfile(models.NewProfile(name, darpanBirth, nil, nil)); err != nil {
			t.Fatalf("failed to create profile: %v", err)
		}
	}

	if err := db.Reset(); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}

	profiles, _ := db.ListProfiles()
	if len(profiles) != 0 {
		t.Errorf("got %d profiles after reset, want 0", len(profiles))
	}
}
