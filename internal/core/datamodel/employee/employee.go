package employee

import "time"

type Employee struct {
	ID               string     `gorm:"primaryKey;type:uuid"`
	Name             string     `gorm:"column:name;not null"`
	Email            string     `gorm:"column:email;not null;uniqueIndex"`
	Department       string     `gorm:"column:department"`
	AvatarURL        string     `gorm:"column:avatar_url"`
	Phone            string     `gorm:"column:phone"`
	StartDate        *time.Time `gorm:"column:start_date;type:date"`
	Status           string     `gorm:"column:status;default:active"`
	ExternalID       *string    `gorm:"column:external_id;uniqueIndex"`
	ExternalUsername *string    `gorm:"column:external_username"`
	JobTitle         *string    `gorm:"column:job_title"`
	EmployeeNumber   *string    `gorm:"column:employee_number"`
	OfficeLocation   string     `gorm:"column:office_location"`
	LastSyncAt       *time.Time `gorm:"column:last_sync_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
