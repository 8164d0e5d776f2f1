package services

import (
	"context"
	"fmt"

	"github.com/voltfleet/voltfleet-backend/internal/models"
	"github.com/voltfleet/voltfleet-backend/internal/storage"
	"github.com/voltfleet/voltfleet-backend/internal/validation"
)

// StationService implements the owner-scoped charging-station
// operations. The owning user id always comes from the verified token,
// never from the request body.
type StationService struct {
	store storage.Storage
}

func NewStationService(store storage.Storage) *StationService {
	return &StationService{store: store}
}

func (s *StationService) Create(ctx context.Context, userID uint, in *validation.CreateStationInput) (*models.ChargingStation, error) {
	if err := validation.ValidateCreate(in); err != nil {
		return nil, err
	}

	station := models.ChargingStation{
		Name:          in.Name,
		Address:       in.Address,
		Latitude:      *in.Latitude,
		Longitude:     *in.Longitude,
		Status:        in.Status,
		PowerOutput:   *in.PowerOutput,
		ConnectorType: in.ConnectorType,
		UserID:        userID,
	}
	if err := s.store.CreateStation(ctx, &station); err != nil {
		return nil, fmt.Errorf("failed to create station: %w", err)
	}
	return &station, nil
}

func (s *StationService) List(ctx context.Context, userID uint, filter storage.StationFilter) ([]models.ChargingStation, error) {
	return s.store.ListStations(ctx, userID, filter)
}

func (s *StationService) Get(ctx context.Context, id, userID uint) (*models.ChargingStation, error) {
	return s.store.StationByID(ctx, id, userID)
}

// Update applies only supplied fields. An empty payload changes no
// columns but still refreshes updatedAt.
func (s *StationService) Update(ctx context.Context, id, userID uint, in *validation.UpdateStationInput) (*models.ChargingStation, error) {
	if err := validation.ValidateUpdate(in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Latitude != nil {
		updates["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		updates["longitude"] = *in.Longitude
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.PowerOutput != nil {
		updates["power_output"] = *in.PowerOutput
	}
	if in.ConnectorType != nil {
		updates["connector_type"] = *in.ConnectorType
	}

	return s.store.UpdateStation(ctx, id, userID, updates)
}

func (s *StationService) Delete(ctx context.Context, id, userID uint) error {
	return s.store.DeleteStation(ctx, id, userID)
}

func (s *StationService) Stats(ctx context.Context, userID uint) (*storage.StationStats, error) {
	return s.store.StationStats(ctx, userID)
}
