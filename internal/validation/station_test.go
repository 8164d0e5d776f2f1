package validation

import (
	"errors"
	"testing"
)

func float64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int             { return &i }
func strPtr(s string) *string       { return &s }

func validCreateInput() *CreateStationInput {
	return &CreateStationInput{
		Name:          "Downtown",
		Address:       "1 Main St",
		Latitude:      float64Ptr(37.77),
		Longitude:     float64Ptr(-122.42),
		Status:        "active",
		PowerOutput:   intPtr(150),
		ConnectorType: "ccs",
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	if err := ValidateCreate(validCreateInput()); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}
}

func TestValidateCreate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateStationInput)
		field  string
	}{
		{"missing name", func(in *CreateStationInput) { in.Name = "  " }, "name"},
		{"missing address", func(in *CreateStationInput) { in.Address = "" }, "address"},
		{"missing latitude", func(in *CreateStationInput) { in.Latitude = nil }, "latitude"},
		{"latitude too low", func(in *CreateStationInput) { in.Latitude = float64Ptr(-90.1) }, "latitude"},
		{"latitude too high", func(in *CreateStationInput) { in.Latitude = float64Ptr(90.1) }, "latitude"},
		{"longitude too low", func(in *CreateStationInput) { in.Longitude = float64Ptr(-180.5) }, "longitude"},
		{"longitude too high", func(in *CreateStationInput) { in.Longitude = float64Ptr(180.5) }, "longitude"},
		{"bad status", func(in *CreateStationInput) { in.Status = "broken" }, "status"},
		{"missing status", func(in *CreateStationInput) { in.Status = "" }, "status"},
		{"power too low", func(in *CreateStationInput) { in.PowerOutput = intPtr(0) }, "powerOutput"},
		{"power too high", func(in *CreateStationInput) { in.PowerOutput = intPtr(1001) }, "powerOutput"},
		{"missing power", func(in *CreateStationInput) { in.PowerOutput = nil }, "powerOutput"},
		{"bad connector", func(in *CreateStationInput) { in.ConnectorType = "tesla" }, "connectorType"},
		{"missing connector", func(in *CreateStationInput) { in.ConnectorType = "" }, "connectorType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(in)

			err := ValidateCreate(in)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Fatalf("expected field %q in errors, got %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestValidateCreate_BoundaryValues(t *testing.T) {
	in := validCreateInput()
	in.Latitude = float64Ptr(-90)
	in.Longitude = float64Ptr(180)
	in.PowerOutput = intPtr(1000)
	if err := ValidateCreate(in); err != nil {
		t.Fatalf("expected boundary values to pass, got %v", err)
	}

	in = validCreateInput()
	in.Latitude = float64Ptr(90)
	in.Longitude = float64Ptr(-180)
	in.PowerOutput = intPtr(1)
	if err := ValidateCreate(in); err != nil {
		t.Fatalf("expected boundary values to pass, got %v", err)
	}
}

func TestValidateCreate_CollectsAllFields(t *testing.T) {
	in := &CreateStationInput{}
	err := ValidateCreate(in)
	if err == nil {
		t.Fatalf("expected error for empty input")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	for _, field := range []string{"name", "address", "latitude", "longitude", "status", "powerOutput", "connectorType"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected field %q in errors", field)
		}
	}
}

func TestValidateUpdate_EmptyIsValid(t *testing.T) {
	if err := ValidateUpdate(&UpdateStationInput{}); err != nil {
		t.Fatalf("expected empty update to pass, got %v", err)
	}
}

func TestValidateUpdate_OnlySuppliedFieldsChecked(t *testing.T) {
	in := &UpdateStationInput{Status: strPtr("maintenance")}
	if err := ValidateUpdate(in); err != nil {
		t.Fatalf("expected valid partial update to pass, got %v", err)
	}

	in = &UpdateStationInput{Status: strPtr("offline")}
	err := ValidateUpdate(in)
	if err == nil {
		t.Fatalf("expected error for bad status")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 1 {
		t.Fatalf("expected a single field error, got %v", verr.Fields)
	}
}

func TestValidateUpdate_RangeChecks(t *testing.T) {
	tests := []struct {
		name  string
		in    *UpdateStationInput
		field string
	}{
		{"bad latitude", &UpdateStationInput{Latitude: float64Ptr(91)}, "latitude"},
		{"bad longitude", &UpdateStationInput{Longitude: float64Ptr(-181)}, "longitude"},
		{"bad power", &UpdateStationInput{PowerOutput: intPtr(2000)}, "powerOutput"},
		{"blank name", &UpdateStationInput{Name: strPtr("")}, "name"},
		{"bad connector", &UpdateStationInput{ConnectorType: strPtr("usb")}, "connectorType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdate(tt.in)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Fatalf("expected field %q in errors, got %v", tt.field, verr.Fields)
			}
		})
	}
}
