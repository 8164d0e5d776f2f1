// Package storage is the persistence layer. Every station operation is
// scoped by the owning user; a nonexistent id and an ownership mismatch
// are deliberately indistinguishable to callers.
package storage

import (
	"context"
	"errors"

	"github.com/voltfleet/voltfleet-backend/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrStationNotFound = errors.New("station not found")
	ErrDuplicateUser   = errors.New("username or email already registered")
)

// StationFilter narrows a station listing. Zero values mean no filter.
type StationFilter struct {
	// Search matches name or address, case-insensitive substring.
	Search string
	// Status restricts to a single operational status.
	Status string
}

// StationStats summarizes a user's fleet for the dashboard.
type StationStats struct {
	TotalStations       int64 `json:"totalStations"`
	ActiveStations      int64 `json:"activeStations"`
	MaintenanceStations int64 `json:"maintenanceStations"`
	TotalPowerKW        int64 `json:"totalPowerKw"`
}

// Storage is the persistence contract for users and charging stations.
type Storage interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id uint) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)

	ListStations(ctx context.Context, userID uint, filter StationFilter) ([]models.ChargingStation, error)
	CreateStation(ctx context.Context, station *models.ChargingStation) error
	StationByID(ctx context.Context, id, userID uint) (*models.ChargingStation, error)
	UpdateStation(ctx context.Context, id, userID uint, updates map[string]interface{}) (*models.ChargingStation, error)
	DeleteStation(ctx context.Context, id, userID uint) error
	StationStats(ctx context.Context, userID uint) (*StationStats, error)
}
