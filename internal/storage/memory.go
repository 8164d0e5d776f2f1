package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/voltfleet/voltfleet-backend/internal/models"
)

// MemoryStorage is an in-memory Storage used by tests. It mirrors the
// semantics of GormStorage, including the dual id+owner predicate on
// update and delete.
type MemoryStorage struct {
	mu            sync.Mutex
	users         map[uint]*models.User
	stations      map[uint]*models.ChargingStation
	nextUserID    uint
	nextStationID uint
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:         make(map[uint]*models.User),
		stations:      make(map[uint]*models.ChargingStation),
		nextUserID:    1,
		nextStationID: 1,
	}
}

func (s *MemoryStorage) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrDuplicateUser
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryStorage) UserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemoryStorage) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStorage) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStorage) ListStations(_ context.Context, userID uint, filter StationFilter) ([]models.ChargingStation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.ChargingStation
	for _, st := range s.stations {
		if st.UserID != userID {
			continue
		}
		if filter.Status != "" && st.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(st.Name), needle) &&
				!strings.Contains(strings.ToLower(st.Address), needle) {
				continue
			}
		}
		out = append(out, *st)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStorage) CreateStation(_ context.Context, station *models.ChargingStation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	station.ID = s.nextStationID
	s.nextStationID++
	now := time.Now()
	station.CreatedAt = now
	station.UpdatedAt = now
	clone := *station
	s.stations[station.ID] = &clone
	return nil
}

func (s *MemoryStorage) StationByID(_ context.Context, id, userID uint) (*models.ChargingStation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[id]
	if !ok || st.UserID != userID {
		return nil, ErrStationNotFound
	}
	clone := *st
	return &clone, nil
}

func (s *MemoryStorage) UpdateStation(_ context.Context, id, userID uint, updates map[string]interface{}) (*models.ChargingStation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[id]
	if !ok || st.UserID != userID {
		return nil, ErrStationNotFound
	}

	for column, value := range updates {
		switch column {
		case "name":
			st.Name = value.(string)
		case "address":
			st.Address = value.(string)
		case "latitude":
			st.Latitude = value.(float64)
		case "longitude":
			st.Longitude = value.(float64)
		case "status":
			st.Status = value.(string)
		case "power_output":
			st.PowerOutput = value.(int)
		case "connector_type":
			st.ConnectorType = value.(string)
		}
	}
	st.UpdatedAt = time.Now()

	clone := *st
	return &clone, nil
}

func (s *MemoryStorage) DeleteStation(_ context.Context, id, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stations[id]
	if !ok || st.UserID != userID {
		return ErrStationNotFound
	}
	delete(s.stations, id)
	return nil
}

func (s *MemoryStorage) StationStats(_ context.Context, userID uint) (*StationStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &StationStats{}
	for _, st := range s.stations {
		if st.UserID != userID {
			continue
		}
		stats.TotalStations++
		stats.TotalPowerKW += int64(st.PowerOutput)
		switch st.Status {
		case models.StatusActive:
			stats.ActiveStations++
		case models.StatusMaintenance:
			stats.MaintenanceStations++
		}
	}
	return stats, nil
}
