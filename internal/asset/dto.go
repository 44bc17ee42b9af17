package asset

import (
	"strings"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
)

type CreateAssetDTO struct {
	Name           string     `json:"name"`
	AssetType      string     `json:"asset_type"`
	SerialNumber   string     `json:"serial_number"`
	Model          *string    `json:"model"`
	Manufacturer   *string    `json:"manufacturer"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	Notes          string     `json:"notes"`
	OfficeLocation string     `json:"office_location"`
}

func (d *CreateAssetDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.SerialNumber) == "" {
		return internal.NewValidationError("serial_number is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.AssetType) == "" {
		return internal.NewValidationError("asset_type is required", internal.ErrCodeInvalidAssetType)
	}
	return nil
}

type UpdateAssetDTO struct {
	Name           *string    `json:"name"`
	AssetType      *string    `json:"asset_type"`
	Status         *string    `json:"status"`
	AssignedToID   *string    `json:"assigned_to_id"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	Notes          *string    `json:"notes"`
	OfficeLocation *string    `json:"office_location"`
}

func (d *UpdateAssetDTO) Validate() error {
	if d.Status != nil && !ValidStatus(*d.Status) {
		return internal.NewValidationError("unknown asset status", internal.ErrCodeInvalidStatus)
	}
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be blank", internal.ErrCodeValidationFailed)
	}
	return nil
}
