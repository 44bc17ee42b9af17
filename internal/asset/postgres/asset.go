package postgres

import (
	"errors"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/Boateng555/assettrack-harren/internal/asset"
	assetDatamodel "github.com/Boateng555/assettrack-harren/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

// AssetRepository implements asset.RepositoryAPI using GORM.
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.RepositoryAPI {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(a *asset.Asset) error {
	return r.db.Create(asset.ToDataModel(a)).Error
}

func (r *AssetRepository) Update(a *asset.Asset) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(asset.ToDataModel(a)).Error
}

func (r *AssetRepository) GetByID(id string) (*asset.Asset, error) {
	var model assetDatamodel.Asset
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		return nil, err
	}
	return asset.FromDataModel(&model), nil
}

func (r *AssetRepository) GetByExternalID(externalID string) (*asset.Asset, error) {
	var model assetDatamodel.Asset
	err := r.db.Where("external_id = ?", externalID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		return nil, err
	}
	return asset.FromDataModel(&model), nil
}

func (r *AssetRepository) GetBySerialNumber(serial string) (*asset.Asset, error) {
	var model assetDatamodel.Asset
	err := r.db.Where("serial_number = ?", serial).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		return nil, err
	}
	return asset.FromDataModel(&model), nil
}

func (r *AssetRepository) GetAll(limit, offset int) ([]*asset.Asset, error) {
	var models []assetDatamodel.Asset
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

func (r *AssetRepository) GetByStatus(status string, limit, offset int) ([]*asset.Asset, error) {
	var models []assetDatamodel.Asset
	err := r.db.Where("status = ?", status).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

func (r *AssetRepository) GetByOwner(employeeID string) ([]*asset.Asset, error) {
	var models []assetDatamodel.Asset
	err := r.db.Where("assigned_to_id = ?", employeeID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

// ListAssignedToEmployeeStatuses returns assets whose owner is in one of
// the given lifecycle statuses. Used by orphan cleanup.
func (r *AssetRepository) ListAssignedToEmployeeStatuses(statuses []string) ([]*asset.Asset, error) {
	var models []assetDatamodel.Asset
	err := r.db.
		Joins("JOIN employees ON employees.id = assets.assigned_to_id").
		Where("employees.status IN ?", statuses).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

func (r *AssetRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&assetDatamodel.Asset{}).Error
}

func (r *AssetRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&assetDatamodel.Asset{}).Count(&count).Error
	return count, err
}

func (r *AssetRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&assetDatamodel.Asset{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func fromDataModels(models []assetDatamodel.Asset) []*asset.Asset {
	assets := make([]*asset.Asset, 0, len(models))
	for i := range models {
		assets = append(assets, asset.FromDataModel(&models[i]))
	}
	return assets
}
