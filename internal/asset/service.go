package asset

import (
	"log/slog"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/google/uuid"
)

// RepositoryAPI defines the registry store operations for assets.
type RepositoryAPI interface {
	Create(a *Asset) error
	Update(a *Asset) error
	GetByID(id string) (*Asset, error)
	GetByExternalID(externalID string) (*Asset, error)
	GetBySerialNumber(serial string) (*Asset, error)
	GetAll(limit, offset int) ([]*Asset, error)
	GetByStatus(status string, limit, offset int) ([]*Asset, error)
	GetByOwner(employeeID string) ([]*Asset, error)
	ListAssignedToEmployeeStatuses(statuses []string) ([]*Asset, error)
	Delete(id string) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) CreateAsset(dto CreateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("asset validation failed", "error", err, "serial", dto.SerialNumber)
		return nil, err
	}

	if existing, err := s.repo.GetBySerialNumber(dto.SerialNumber); err == nil && existing != nil {
		return nil, internal.ErrDuplicateSerial
	}

	office := dto.OfficeLocation
	if office == "" {
		office = "bernem"
	}

	now := s.now()
	a := &Asset{
		ID:             uuid.New().String(),
		Name:           dto.Name,
		AssetType:      dto.AssetType,
		SerialNumber:   dto.SerialNumber,
		Model:          dto.Model,
		Manufacturer:   dto.Manufacturer,
		Status:         StatusAvailable,
		PurchaseDate:   dto.PurchaseDate,
		WarrantyExpiry: dto.WarrantyExpiry,
		Notes:          dto.Notes,
		OfficeLocation: office,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create asset", "error", err, "serial", dto.SerialNumber)
		return nil, err
	}

	ComputeHealth(a, now)
	s.logger.Info("asset created", "asset_id", a.ID, "serial", a.SerialNumber)

	return a, nil
}

func (s *Service) GetAssetByID(id string) (*Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get asset", "error", err, "asset_id", id)
		return nil, internal.ErrAssetNotFound
	}

	ComputeHealth(a, s.now())
	return a, nil
}

func (s *Service) ListAssets(status string, limit, offset int) ([]*Asset, error) {
	var (
		assets []*Asset
		err    error
	)

	if status != "" {
		if !ValidStatus(status) {
			return nil, internal.NewValidationError("unknown status filter", internal.ErrCodeInvalidStatus)
		}
		assets, err = s.repo.GetByStatus(status, limit, offset)
	} else {
		assets, err = s.repo.GetAll(limit, offset)
	}
	if err != nil {
		return nil, err
	}

	today := s.now()
	for _, a := range assets {
		ComputeHealth(a, today)
	}

	return assets, nil
}

func (s *Service) ListAssetsForEmployee(employeeID string) ([]*Asset, error) {
	assets, err := s.repo.GetByOwner(employeeID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	for _, a := range assets {
		ComputeHealth(a, today)
	}

	return assets, nil
}

func (s *Service) UpdateAsset(id string, dto UpdateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrAssetNotFound
	}

	if dto.Name != nil {
		a.Name = *dto.Name
	}
	if dto.AssetType != nil {
		a.AssetType = *dto.AssetType
	}
	if dto.Status != nil {
		a.Status = *dto.Status
	}
	if dto.AssignedToID != nil {
		if *dto.AssignedToID == "" {
			a.AssignedToID = nil
		} else {
			a.AssignedToID = dto.AssignedToID
			a.Status = StatusAssigned
		}
	}
	if dto.PurchaseDate != nil {
		a.PurchaseDate = dto.PurchaseDate
	}
	if dto.WarrantyExpiry != nil {
		a.WarrantyExpiry = dto.WarrantyExpiry
	}
	if dto.Notes != nil {
		a.Notes = *dto.Notes
	}
	if dto.OfficeLocation != nil {
		a.OfficeLocation = *dto.OfficeLocation
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update asset", "error", err, "asset_id", id)
		return nil, err
	}

	ComputeHealth(a, s.now())
	return a, nil
}

func (s *Service) DeleteAsset(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrAssetNotFound
	}
	return s.repo.Delete(id)
}
