package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/voltfleet/voltfleet-backend/internal/models"
	"gorm.io/gorm"
)

// GormStorage implements Storage on a GORM-managed Postgres connection.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (s *GormStorage) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (s *GormStorage) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStorage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStorage) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStorage) ListStations(ctx context.Context, userID uint, filter StationFilter) ([]models.ChargingStation, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(address) LIKE ?)", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var stations []models.ChargingStation
	if err := query.Order("created_at DESC").Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

func (s *GormStorage) CreateStation(ctx context.Context, station *models.ChargingStation) error {
	return s.db.WithContext(ctx).Create(station).Error
}

func (s *GormStorage) StationByID(ctx context.Context, id, userID uint) (*models.ChargingStation, error) {
	var station models.ChargingStation
	err := s.db.WithContext(ctx).First(&station, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &station, nil
}

// UpdateStation applies only the supplied columns. The dual id+user_id
// predicate makes a missing row and a foreign row report the same
// not-found result. An empty map still touches updated_at, so every
// successful PUT bumps the timestamp.
func (s *GormStorage) UpdateStation(ctx context.Context, id, userID uint, updates map[string]interface{}) (*models.ChargingStation, error) {
	if len(updates) == 0 {
		updates = map[string]interface{}{"updated_at": time.Now()}
	}
	result := s.db.WithContext(ctx).Model(&models.ChargingStation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrStationNotFound
	}
	return s.StationByID(ctx, id, userID)
}

func (s *GormStorage) DeleteStation(ctx context.Context, id, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ChargingStation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStationNotFound
	}
	return nil
}

func (s *GormStorage) StationStats(ctx context.Context, userID uint) (*StationStats, error) {
	stats := &StationStats{}
	base := s.db.WithContext(ctx).Model(&models.ChargingStation{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalStations).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusActive).Count(&stats.ActiveStations).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusMaintenance).Count(&stats.MaintenanceStations).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Select("COALESCE(SUM(power_output), 0)").Scan(&stats.TotalPowerKW).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
