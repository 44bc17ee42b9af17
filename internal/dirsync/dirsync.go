package dirsync

import (
	"context"
	"errors"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/directory"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

// DirectoryAPI is the slice of the directory client the sync engine
// consumes. Listings are full pulls; pagination is the client's problem.
type DirectoryAPI interface {
	ListActiveIdentities(ctx context.Context) ([]directory.Identity, error)
	ListDeletedIdentities(ctx context.Context) ([]directory.Identity, error)
	ListDevices(ctx context.Context) ([]directory.Device, error)
	ListDevicesForIdentity(ctx context.Context, identityID string) ([]directory.Device, error)
	GetPhotoURL(ctx context.Context, identityID string) (string, error)
}

// EmployeeStore is the registry surface the engine needs for employees.
type EmployeeStore interface {
	GetByExternalID(externalID string) (*employee.Employee, error)
	GetByEmail(email string) (*employee.Employee, error)
	ListExternallyManaged() ([]*employee.Employee, error)
	Create(emp *employee.Employee) error
	Update(emp *employee.Employee) error
	UpdateStatus(id, status string, syncedAt time.Time) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountExternallyManaged() (int64, error)
}

// AssetStore is the registry surface the engine needs for assets.
type AssetStore interface {
	GetByExternalID(externalID string) (*asset.Asset, error)
	GetBySerialNumber(serial string) (*asset.Asset, error)
	Create(a *asset.Asset) error
	Update(a *asset.Asset) error
	ListAssignedToEmployeeStatuses(statuses []string) ([]*asset.Asset, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

func isNotFound(err error) bool {
	return errors.Is(err, internal.ErrEmployeeNotFound) || errors.Is(err, internal.ErrAssetNotFound)
}
