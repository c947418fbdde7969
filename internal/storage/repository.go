// ABOUTME: Repository interfaces for saved birth profiles
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"github.com/google/uuid"
	"github.com/harper/astro/internal/models"
)

// ProfileRepository defines operations for managing saved profiles.
type ProfileRepository interface {
	CreateProfile(p *models.Profile) error
	GetProfile(id uuid.UUID) (*models.Profile, error)
	GetProfileByName(name string) (*models.Profile, error)
	ListProfiles() ([]*models.Profile, error)
	UpdateProfile(p *models.Profile) error
	DeleteProfile(id uuid.UUID) error
}

// Repository combines profile operations with lifecycle management.
type Repository interface {
	ProfileRepository
	Close() error
	Reset() error
}
