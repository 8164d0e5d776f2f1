package models

import "time"

// Station status values.
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
)

// Supported connector types.
const (
	ConnectorType1   = "type1"
	ConnectorType2   = "type2"
	ConnectorCCS     = "ccs"
	ConnectorCHAdeMO = "chademo"
)

// ChargingStation is a physical charging point owned by exactly one
// user. Every read and mutation is scoped by UserID.
type ChargingStation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Address       string    `gorm:"size:500;not null" json:"address"`
	Latitude      float64   `gorm:"type:decimal(10,7);not null" json:"latitude"`
	Longitude     float64   `gorm:"type:decimal(10,7);not null" json:"longitude"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	PowerOutput   int       `gorm:"not null" json:"powerOutput"`
	ConnectorType string    `gorm:"size:20;not null" json:"connectorType"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
