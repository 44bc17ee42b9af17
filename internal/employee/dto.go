package employee

import (
	"strings"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
)

type CreateEmployeeDTO struct {
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Department     string     `json:"department"`
	Phone          string     `json:"phone"`
	OfficeLocation string     `json:"office_location"`
	StartDate      *time.Time `json:"start_date"`
}

func (d *CreateEmployeeDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateEmployeeDTO struct {
	Name           *string    `json:"name"`
	Department     *string    `json:"department"`
	Phone          *string    `json:"phone"`
	OfficeLocation *string    `json:"office_location"`
	Status         *string    `json:"status"`
	StartDate      *time.Time `json:"start_date"`
}

func (d *UpdateEmployeeDTO) Validate() error {
	if d.Status != nil && !ValidStatus(*d.Status) {
		return internal.NewValidationError("status must be one of active, inactive, deleted", internal.ErrCodeInvalidStatus)
	}
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be blank", internal.ErrCodeValidationFailed)
	}
	return nil
}
