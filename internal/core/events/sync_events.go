package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSyncCompleted   = "sync.completed"
	EventTypeAssetUnassigned = "asset.unassigned"
)

type SyncCompletedEvent struct {
	BaseEvent
	EmployeesCreated  int `json:"employees_created"`
	EmployeesUpdated  int `json:"employees_updated"`
	EmployeesDisabled int `json:"employees_disabled"`
	EmployeesDeleted  int `json:"employees_deleted"`
	AssetsCleanedUp   int `json:"assets_cleaned_up"`
	ErrorCount        int `json:"error_count"`
}

func NewSyncCompletedEvent(created, updated, disabled, deleted, cleaned, errCount int) *SyncCompletedEvent {
	return &SyncCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSyncCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employees_created":  created,
				"employees_updated":  updated,
				"employees_disabled": disabled,
				"employees_deleted":  deleted,
				"assets_cleaned_up":  cleaned,
				"error_count":        errCount,
			},
		},
		EmployeesCreated:  created,
		EmployeesUpdated:  updated,
		EmployeesDisabled: disabled,
		EmployeesDeleted:  deleted,
		AssetsCleanedUp:   cleaned,
		ErrorCount:        errCount,
	}
}

type AssetUnassignedEvent struct {
	BaseEvent
	AssetID      string `json:"asset_id"`
	AssetName    string `json:"asset_name"`
	FromEmployee string `json:"from_employee"`
}

func NewAssetUnassignedEvent(assetID, assetName, fromEmployee string) *AssetUnassignedEvent {
	return &AssetUnassignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAssetUnassigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"asset_id":      assetID,
				"asset_name":    assetName,
				"from_employee": fromEmployee,
			},
		},
		AssetID:      assetID,
		AssetName:    assetName,
		FromEmployee: fromEmployee,
	}
}
