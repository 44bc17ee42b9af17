package dirsync

import (
	"time"

	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

// fieldRule is one entry of a merge table. A rule fires only when the
// incoming value is present and differs from the stored one; firing
// applies the value and reports the field name as changed.
type fieldRule struct {
	name    string
	present func() bool
	differs func() bool
	apply   func()
}

func applyRules(rules []fieldRule) []string {
	var changed []string
	for _, rule := range rules {
		if !rule.present() || !rule.differs() {
			continue
		}
		rule.apply()
		changed = append(changed, rule.name)
	}
	return changed
}

// MergeEmployee copies directory-sourced fields from incoming onto dst.
// Empty incoming values never clear stored data, and sync bookkeeping
// (status, office, last_sync_at) is the caller's business. The returned
// slice names every field that actually changed.
func MergeEmployee(dst, incoming *employee.Employee) []string {
	return applyRules([]fieldRule{
		{
			name:    "name",
			present: func() bool { return incoming.Name != "" },
			differs: func() bool { return dst.Name != incoming.Name },
			apply:   func() { dst.Name = incoming.Name },
		},
		{
			name:    "email",
			present: func() bool { return incoming.Email != "" },
			differs: func() bool { return dst.Email != incoming.Email },
			apply:   func() { dst.Email = incoming.Email },
		},
		{
			name:    "department",
			present: func() bool { return incoming.Department != "" },
			differs: func() bool { return dst.Department != incoming.Department },
			apply:   func() { dst.Department = incoming.Department },
		},
		{
			name:    "phone",
			present: func() bool { return incoming.Phone != "" },
			differs: func() bool { return dst.Phone != incoming.Phone },
			apply:   func() { dst.Phone = incoming.Phone },
		},
		{
			name:    "avatar_url",
			present: func() bool { return incoming.AvatarURL != "" },
			differs: func() bool { return dst.AvatarURL != incoming.AvatarURL },
			apply:   func() { dst.AvatarURL = incoming.AvatarURL },
		},
		{
			name:    "external_id",
			present: func() bool { return strPtrSet(incoming.ExternalID) },
			differs: func() bool { return !strPtrEqual(dst.ExternalID, incoming.ExternalID) },
			apply:   func() { dst.ExternalID = clonePtr(incoming.ExternalID) },
		},
		{
			name:    "external_username",
			present: func() bool { return strPtrSet(incoming.ExternalUsername) },
			differs: func() bool { return !strPtrEqual(dst.ExternalUsername, incoming.ExternalUsername) },
			apply:   func() { dst.ExternalUsername = clonePtr(incoming.ExternalUsername) },
		},
		{
			name:    "job_title",
			present: func() bool { return strPtrSet(incoming.JobTitle) },
			differs: func() bool { return !strPtrEqual(dst.JobTitle, incoming.JobTitle) },
			apply:   func() { dst.JobTitle = clonePtr(incoming.JobTitle) },
		},
		{
			name:    "employee_number",
			present: func() bool { return strPtrSet(incoming.EmployeeNumber) },
			differs: func() bool { return !strPtrEqual(dst.EmployeeNumber, incoming.EmployeeNumber) },
			apply:   func() { dst.EmployeeNumber = clonePtr(incoming.EmployeeNumber) },
		},
	})
}

// MergeAsset copies directory-sourced fields from incoming onto dst.
// Assignment, status and last_sync_at are handled by the reconcilers.
func MergeAsset(dst, incoming *asset.Asset) []string {
	return applyRules([]fieldRule{
		{
			name:    "name",
			present: func() bool { return incoming.Name != "" },
			differs: func() bool { return dst.Name != incoming.Name },
			apply:   func() { dst.Name = incoming.Name },
		},
		{
			name:    "asset_type",
			present: func() bool { return incoming.AssetType != "" },
			differs: func() bool { return dst.AssetType != incoming.AssetType },
			apply:   func() { dst.AssetType = incoming.AssetType },
		},
		{
			name:    "serial_number",
			present: func() bool { return incoming.SerialNumber != "" },
			differs: func() bool { return dst.SerialNumber != incoming.SerialNumber },
			apply:   func() { dst.SerialNumber = incoming.SerialNumber },
		},
		{
			name:    "model",
			present: func() bool { return strPtrSet(incoming.Model) },
			differs: func() bool { return !strPtrEqual(dst.Model, incoming.Model) },
			apply:   func() { dst.Model = clonePtr(incoming.Model) },
		},
		{
			name:    "manufacturer",
			present: func() bool { return strPtrSet(incoming.Manufacturer) },
			differs: func() bool { return !strPtrEqual(dst.Manufacturer, incoming.Manufacturer) },
			apply:   func() { dst.Manufacturer = clonePtr(incoming.Manufacturer) },
		},
		{
			name:    "external_id",
			present: func() bool { return strPtrSet(incoming.ExternalID) },
			differs: func() bool { return !strPtrEqual(dst.ExternalID, incoming.ExternalID) },
			apply:   func() { dst.ExternalID = clonePtr(incoming.ExternalID) },
		},
		{
			name:    "operating_system",
			present: func() bool { return strPtrSet(incoming.OperatingSystem) },
			differs: func() bool { return !strPtrEqual(dst.OperatingSystem, incoming.OperatingSystem) },
			apply:   func() { dst.OperatingSystem = clonePtr(incoming.OperatingSystem) },
		},
		{
			name:    "os_version",
			present: func() bool { return strPtrSet(incoming.OSVersion) },
			differs: func() bool { return !strPtrEqual(dst.OSVersion, incoming.OSVersion) },
			apply:   func() { dst.OSVersion = clonePtr(incoming.OSVersion) },
		},
		{
			name:    "registered_at",
			present: func() bool { return incoming.RegisteredAt != nil },
			differs: func() bool { return !timePtrEqual(dst.RegisteredAt, incoming.RegisteredAt) },
			apply:   func() { dst.RegisteredAt = cloneTimePtr(incoming.RegisteredAt) },
		},
		{
			name:    "last_sign_in_at",
			present: func() bool { return incoming.LastSignInAt != nil },
			differs: func() bool { return !timePtrEqual(dst.LastSignInAt, incoming.LastSignInAt) },
			apply:   func() { dst.LastSignInAt = cloneTimePtr(incoming.LastSignInAt) },
		},
	})
}

func strPtrSet(p *string) bool {
	return p != nil && *p != ""
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
