package employee

import (
	"time"

	employeeDatamodel "github.com/Boateng555/assettrack-harren/internal/core/datamodel/employee"
)

type Employee struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Department       string     `json:"department"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	Status           string     `json:"status"`
	ExternalID       *string    `json:"external_id,omitempty"`
	ExternalUsername *string    `json:"external_username,omitempty"`
	JobTitle         *string    `json:"job_title,omitempty"`
	EmployeeNumber   *string    `json:"employee_number,omitempty"`
	OfficeLocation   string     `json:"office_location,omitempty"`
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

const (
	DepartmentInternal = "Internal"
	DepartmentExternal = "External"
)

const (
	OfficeBernem  = "bernem"
	OfficeHamburg = "hamburg"
	OfficeOther   = "other"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// IsActive reports whether the employee may hold assigned assets.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// ExternallyManaged reports whether the record is owned by directory sync.
func (e *Employee) ExternallyManaged() bool {
	return e.ExternalID != nil && *e.ExternalID != ""
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:               e.ID,
		Name:             e.Name,
		Email:            e.Email,
		Department:       e.Department,
		AvatarURL:        e.AvatarURL,
		Phone:            e.Phone,
		StartDate:        e.StartDate,
		Status:           e.Status,
		ExternalID:       e.ExternalID,
		ExternalUsername: e.ExternalUsername,
		JobTitle:         e.JobTitle,
		EmployeeNumber:   e.EmployeeNumber,
		OfficeLocation:   e.OfficeLocation,
		LastSyncAt:       e.LastSyncAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:               e.ID,
		Name:             e.Name,
		Email:            e.Email,
		Department:       e.Department,
		AvatarURL:        e.AvatarURL,
		Phone:            e.Phone,
		StartDate:        e.StartDate,
		Status:           e.Status,
		ExternalID:       e.ExternalID,
		ExternalUsername: e.ExternalUsername,
		JobTitle:         e.JobTitle,
		EmployeeNumber:   e.EmployeeNumber,
		OfficeLocation:   e.OfficeLocation,
		LastSyncAt:       e.LastSyncAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
