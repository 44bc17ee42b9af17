package directory

import "time"

// Identity is a user record as reported by the directory service.
// Field names follow the Microsoft Graph user resource.
type Identity struct {
	ID                string     `json:"id"`
	DisplayName       string     `json:"displayName"`
	Mail              string     `json:"mail"`
	UserPrincipalName string     `json:"userPrincipalName"`
	Department        string     `json:"department"`
	JobTitle          string     `json:"jobTitle"`
	EmployeeID        string     `json:"employeeId"`
	AccountEnabled    bool       `json:"accountEnabled"`
	BusinessPhones    []string   `json:"businessPhones"`
	MobilePhone       string     `json:"mobilePhone"`
	DeletedAt         *time.Time `json:"deletedDateTime"`
}

// Device is a managed device record as reported by the directory service.
type Device struct {
	ID              string     `json:"id"`
	DisplayName     string     `json:"displayName"`
	DeviceID        string     `json:"deviceId"`
	Manufacturer    string     `json:"manufacturer"`
	Model           string     `json:"model"`
	OperatingSystem string     `json:"operatingSystem"`
	OSVersion       string     `json:"operatingSystemVersion"`
	LastSignInAt    *time.Time `json:"approximateLastSignInDateTime"`
	RegisteredAt    *time.Time `json:"registrationDateTime"`
}
