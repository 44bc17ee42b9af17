package asset

import (
	"time"

	assetDatamodel "github.com/Boateng555/assettrack-harren/internal/core/datamodel/asset"
)

type Asset struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	AssetType       string     `json:"asset_type"`
	SerialNumber    string     `json:"serial_number"`
	Model           *string    `json:"model,omitempty"`
	Manufacturer    *string    `json:"manufacturer,omitempty"`
	Status          string     `json:"status"`
	AssignedToID    *string    `json:"assigned_to_id,omitempty"`
	PurchaseDate    *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry  *time.Time `json:"warranty_expiry,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ExternalID      *string    `json:"external_id,omitempty"`
	OperatingSystem *string    `json:"operating_system,omitempty"`
	OSVersion       *string    `json:"os_version,omitempty"`
	LastSyncAt      *time.Time `json:"last_sync_at,omitempty"`
	LastSignInAt    *time.Time `json:"last_sign_in_at,omitempty"`
	RegisteredAt    *time.Time `json:"registered_at,omitempty"`
	OfficeLocation  string     `json:"office_location,omitempty"`
	HealthScore     int        `json:"health_score"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

const (
	TypeLaptop  = "laptop"
	TypeDesktop = "desktop"
	TypeTablet  = "tablet"
	TypePhone   = "phone"
	TypeMonitor = "monitor"
	TypeServer  = "server"
	TypeOther   = "other"
)

const (
	StatusAvailable   = "available"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
	StatusLost        = "lost"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusAssigned, StatusMaintenance, StatusRetired, StatusLost:
		return true
	}
	return false
}

// ExternallyManaged reports whether the record is owned by directory sync.
func (a *Asset) ExternallyManaged() bool {
	return a.ExternalID != nil && *a.ExternalID != ""
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	return &assetDatamodel.Asset{
		ID:              a.ID,
		Name:            a.Name,
		AssetType:       a.AssetType,
		SerialNumber:    a.SerialNumber,
		Model:           a.Model,
		Manufacturer:    a.Manufacturer,
		Status:          a.Status,
		AssignedToID:    a.AssignedToID,
		PurchaseDate:    a.PurchaseDate,
		WarrantyExpiry:  a.WarrantyExpiry,
		Notes:           a.Notes,
		ExternalID:      a.ExternalID,
		OperatingSystem: a.OperatingSystem,
		OSVersion:       a.OSVersion,
		LastSyncAt:      a.LastSyncAt,
		LastSignInAt:    a.LastSignInAt,
		RegisteredAt:    a.RegisteredAt,
		OfficeLocation:  a.OfficeLocation,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromDataModel(a *assetDatamodel.Asset) *Asset {
	return &Asset{
		ID:              a.ID,
		Name:            a.Name,
		AssetType:       a.AssetType,
		SerialNumber:    a.SerialNumber,
		Model:           a.Model,
		Manufacturer:    a.Manufacturer,
		Status:          a.Status,
		AssignedToID:    a.AssignedToID,
		PurchaseDate:    a.PurchaseDate,
		WarrantyExpiry:  a.WarrantyExpiry,
		Notes:           a.Notes,
		ExternalID:      a.ExternalID,
		OperatingSystem: a.OperatingSystem,
		OSVersion:       a.OSVersion,
		LastSyncAt:      a.LastSyncAt,
		LastSignInAt:    a.LastSignInAt,
		RegisteredAt:    a.RegisteredAt,
		OfficeLocation:  a.OfficeLocation,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
