// Package validation checks charging-station payloads against the
// domain constraints before anything reaches the store.
package validation

import (
	"strings"

	"github.com/voltfleet/voltfleet-backend/internal/models"
)

const (
	MaxNameLen    = 255
	MaxAddressLen = 500
	MinPowerKW    = 1
	MaxPowerKW    = 1000
)

var validStatuses = map[string]bool{
	models.StatusActive:      true,
	models.StatusInactive:    true,
	models.StatusMaintenance: true,
}

var validConnectorTypes = map[string]bool{
	models.ConnectorType1:   true,
	models.ConnectorType2:   true,
	models.ConnectorCCS:     true,
	models.ConnectorCHAdeMO: true,
}

// Error reports which fields failed validation and why.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type fieldErrors map[string]string

func (f fieldErrors) asError() error {
	if len(f) == 0 {
		return nil
	}
	return &Error{Fields: f}
}

// CreateStationInput is the full-insert payload. Numeric fields are
// pointers so a missing field is distinguishable from a zero value
// (latitude 0 is on the equator, not absent).
type CreateStationInput struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Status        string   `json:"status"`
	PowerOutput   *int     `json:"powerOutput"`
	ConnectorType string   `json:"connectorType"`
}

// UpdateStationInput is the partial-update payload; every field is
// optional and validated only when present.
type UpdateStationInput struct {
	Name          *string  `json:"name"`
	Address       *string  `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Status        *string  `json:"status"`
	PowerOutput   *int     `json:"powerOutput"`
	ConnectorType *string  `json:"connectorType"`
}

// ValidateCreate checks a full-insert payload. All domain fields are
// required.
func ValidateCreate(in *CreateStationInput) error {
	errs := fieldErrors{}

	checkName(errs, in.Name)
	checkAddress(errs, in.Address)

	if in.Latitude == nil {
		errs["latitude"] = "latitude is required"
	} else {
		checkLatitude(errs, *in.Latitude)
	}
	if in.Longitude == nil {
		errs["longitude"] = "longitude is required"
	} else {
		checkLongitude(errs, *in.Longitude)
	}
	if in.Status == "" {
		errs["status"] = "status is required"
	} else {
		checkStatus(errs, in.Status)
	}
	if in.PowerOutput == nil {
		errs["powerOutput"] = "powerOutput is required"
	} else {
		checkPowerOutput(errs, *in.PowerOutput)
	}
	if in.ConnectorType == "" {
		errs["connectorType"] = "connectorType is required"
	} else {
		checkConnectorType(errs, in.ConnectorType)
	}

	return errs.asError()
}

// ValidateUpdate checks a partial-update payload; only supplied fields
// are validated.
func ValidateUpdate(in *UpdateStationInput) error {
	errs := fieldErrors{}

	if in.Name != nil {
		checkName(errs, *in.Name)
	}
	if in.Address != nil {
		checkAddress(errs, *in.Address)
	}
	if in.Latitude != nil {
		checkLatitude(errs, *in.Latitude)
	}
	if in.Longitude != nil {
		checkLongitude(errs, *in.Longitude)
	}
	if in.Status != nil {
		checkStatus(errs, *in.Status)
	}
	if in.PowerOutput != nil {
		checkPowerOutput(errs, *in.PowerOutput)
	}
	if in.ConnectorType != nil {
		checkConnectorType(errs, *in.ConnectorType)
	}

	return errs.asError()
}

func checkName(errs fieldErrors, name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		errs["name"] = "name is required"
	} else if len(trimmed) > MaxNameLen {
		errs["name"] = "name must be at most 255 characters"
	}
}

func checkAddress(errs fieldErrors, address string) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		errs["address"] = "address is required"
	} else if len(trimmed) > MaxAddressLen {
		errs["address"] = "address must be at most 500 characters"
	}
}

func checkLatitude(errs fieldErrors, lat float64) {
	if lat < -90 || lat > 90 {
		errs["latitude"] = "latitude must be between -90 and 90"
	}
}

func checkLongitude(errs fieldErrors, lng float64) {
	if lng < -180 || lng > 180 {
		errs["longitude"] = "longitude must be between -180 and 180"
	}
}

func checkStatus(errs fieldErrors, status string) {
	if !validStatuses[status] {
		errs["status"] = "status must be one of: active, inactive, maintenance"
	}
}

func checkPowerOutput(errs fieldErrors, kw int) {
	if kw < MinPowerKW || kw > MaxPowerKW {
		errs["powerOutput"] = "powerOutput must be between 1 and 1000 kW"
	}
}

func checkConnectorType(errs fieldErrors, ct string) {
	if !validConnectorTypes[ct] {
		errs["connectorType"] = "connectorType must be one of: type1, type2, ccs, chademo"
	}
}
