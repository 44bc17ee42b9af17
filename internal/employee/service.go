package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/google/uuid"
)

// RepositoryAPI defines the registry store operations for employees.
type RepositoryAPI interface {
	Create(emp *Employee) error
	Update(emp *Employee) error
	GetByID(id string) (*Employee, error)
	GetByExternalID(externalID string) (*Employee, error)
	GetByEmail(email string) (*Employee, error)
	GetAll(limit, offset int) ([]*Employee, error)
	GetByStatus(status string, limit, offset int) ([]*Employee, error)
	ListExternallyManaged() ([]*Employee, error)
	UpdateStatus(id, status string, syncedAt time.Time) error
	Delete(id string) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountExternallyManaged() (int64, error)
}

// PhotoFetcher pulls profile photos from the directory service.
type PhotoFetcher interface {
	GetPhotoBytes(ctx context.Context, identityID string) ([]byte, error)
}

type Service struct {
	repo   RepositoryAPI
	photos PhotoFetcher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, photos PhotoFetcher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		logger: logger,
	}
}

func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	office := dto.OfficeLocation
	if office == "" {
		office = OfficeBernem
	}

	now := time.Now()
	emp := &Employee{
		ID:             uuid.New().String(),
		Name:           dto.Name,
		Email:          dto.Email,
		Department:     dto.Department,
		Phone:          dto.Phone,
		OfficeLocation: office,
		StartDate:      dto.StartDate,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "email", emp.Email)

	return emp, nil
}

func (s *Service) GetEmployeeByID(id string) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) ListEmployees(status string, limit, offset int) ([]*Employee, error) {
	if status != "" {
		if !ValidStatus(status) {
			return nil, internal.NewValidationError("unknown status filter", internal.ErrCodeInvalidStatus)
		}
		return s.repo.GetByStatus(status, limit, offset)
	}
	return s.repo.GetAll(limit, offset)
}

func (s *Service) UpdateEmployee(id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if dto.Name != nil {
		emp.Name = *dto.Name
	}
	if dto.Department != nil {
		emp.Department = *dto.Department
	}
	if dto.Phone != nil {
		emp.Phone = *dto.Phone
	}
	if dto.OfficeLocation != nil {
		emp.OfficeLocation = *dto.OfficeLocation
	}
	if dto.Status != nil {
		emp.Status = *dto.Status
	}
	if dto.StartDate != nil {
		emp.StartDate = dto.StartDate
	}
	emp.UpdatedAt = time.Now()

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	return emp, nil
}

func (s *Service) DeleteEmployee(id string) error {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrEmployeeNotFound
	}

	// directory-managed records are lifecycle-controlled by sync; the
	// registry only soft-deletes them
	if emp.ExternallyManaged() {
		return s.repo.UpdateStatus(emp.ID, StatusDeleted, time.Now())
	}

	return s.repo.Delete(id)
}

// GetEmployeePhoto streams the directory profile photo for an employee.
func (s *Service) GetEmployeePhoto(ctx context.Context, id string) ([]byte, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}
	if s.photos == nil || !emp.ExternallyManaged() {
		return nil, internal.ErrPhotoNotFound
	}

	photo, err := s.photos.GetPhotoBytes(ctx, *emp.ExternalID)
	if err != nil {
		s.logger.Error("failed to fetch employee photo", "error", err, "employee_id", id)
		return nil, internal.NewExternalError("failed to fetch photo from directory", internal.ErrCodeDirectoryFetch, err)
	}
	if photo == nil {
		return nil, internal.ErrPhotoNotFound
	}

	return photo, nil
}
