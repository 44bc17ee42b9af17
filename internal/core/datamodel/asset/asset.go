package asset

import "time"

type Asset struct {
	ID              string     `gorm:"primaryKey;type:uuid"`
	Name            string     `gorm:"column:name;not null"`
	AssetType       string     `gorm:"column:asset_type;not null"`
	SerialNumber    string     `gorm:"column:serial_number;not null;uniqueIndex"`
	Model           *string    `gorm:"column:model"`
	Manufacturer    *string    `gorm:"column:manufacturer"`
	Status          string     `gorm:"column:status;default:available"`
	AssignedToID    *string    `gorm:"column:assigned_to_id;type:uuid"`
	PurchaseDate    *time.Time `gorm:"column:purchase_date;type:date"`
	WarrantyExpiry  *time.Time `gorm:"column:warranty_expiry;type:date"`
	Notes           string     `gorm:"column:notes"`
	ExternalID      *string    `gorm:"column:external_id;uniqueIndex"`
	OperatingSystem *string    `gorm:"column:operating_system"`
	OSVersion       *string    `gorm:"column:os_version"`
	LastSyncAt      *time.Time `gorm:"column:last_sync_at"`
	LastSignInAt    *time.Time `gorm:"column:last_sign_in_at"`
	RegisteredAt    *time.Time `gorm:"column:registered_at"`
	OfficeLocation  string     `gorm:"column:office_location"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}
