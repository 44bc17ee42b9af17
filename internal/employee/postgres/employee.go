package postgres

import (
	"errors"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
	employeeDatamodel "github.com/Boateng555/assettrack-harren/internal/core/datamodel/employee"
	"github.com/Boateng555/assettrack-harren/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	return r.db.Create(employee.ToDataModel(emp)).Error
}

func (r *EmployeeRepository) Update(emp *employee.Employee) error {
	emp.UpdatedAt = time.Now()
	return r.db.Save(employee.ToDataModel(emp)).Error
}

func (r *EmployeeRepository) GetByID(id string) (*employee.Employee, error) {
	var model employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&model), nil
}

func (r *EmployeeRepository) GetByExternalID(externalID string) (*employee.Employee, error) {
	var model employeeDatamodel.Employee
	err := r.db.Where("external_id = ?", externalID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&model), nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	var model employeeDatamodel.Employee
	err := r.db.Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&model), nil
}

func (r *EmployeeRepository) GetAll(limit, offset int) ([]*employee.Employee, error) {
	var models []employeeDatamodel.Employee
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

func (r *EmployeeRepository) GetByStatus(status string, limit, offset int) ([]*employee.Employee, error) {
	var models []employeeDatamodel.Employee
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

// ListExternallyManaged returns every employee owned by directory sync.
func (r *EmployeeRepository) ListExternallyManaged() ([]*employee.Employee, error) {
	var models []employeeDatamodel.Employee
	err := r.db.Where("external_id IS NOT NULL").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

// UpdateStatus changes only the lifecycle status and re-stamps the sync time.
func (r *EmployeeRepository) UpdateStatus(id, status string, syncedAt time.Time) error {
	return r.db.Model(&employeeDatamodel.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"last_sync_at": syncedAt,
			"updated_at":   time.Now(),
		}).Error
}

func (r *EmployeeRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
}

func (r *EmployeeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) CountExternallyManaged() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).Where("external_id IS NOT NULL").Count(&count).Error
	return count, err
}

func fromDataModels(models []employeeDatamodel.Employee) []*employee.Employee {
	employees := make([]*employee.Employee, 0, len(models))
	for i := range models {
		employees = append(employees, employee.FromDataModel(&models[i]))
	}
	return employees
}
