package dirsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/directory"
	"github.com/Boateng555/assettrack-harren/internal/employee"
	"github.com/google/uuid"
)

// serialFallbackPrefix marks serial numbers synthesized from the
// directory object id when the device reports none.
const serialFallbackPrefix = "DIR_"

func classifyDeviceType(operatingSystem string) string {
	switch {
	case strings.EqualFold(operatingSystem, "Windows"),
		strings.EqualFold(operatingSystem, "MacOS"),
		strings.EqualFold(operatingSystem, "MacMDM"):
		return asset.TypeLaptop
	case strings.EqualFold(operatingSystem, "iOS"),
		strings.EqualFold(operatingSystem, "Android"),
		strings.EqualFold(operatingSystem, "iPhone"),
		strings.EqualFold(operatingSystem, "AndroidForWork"):
		return asset.TypePhone
	}
	return asset.TypeOther
}

// syncDevices reconciles the full managed-device inventory without
// touching assignment links. Devices unknown locally are created as
// available stock.
func (s *Service) syncDevices(ctx context.Context, r *Report) error {
	devices, err := s.directory.ListDevices(ctx)
	if err != nil {
		if directory.IsAuthError(err) {
			return err
		}
		s.logger.Warn("device listing truncated", "fetched", len(devices), "error", err)
		r.noteTruncation(listingDevices)
		r.recordError(KindFetch, "listing", listingDevices, err)
	}

	now := s.now()
	for i := range devices {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.reconcileStandaloneDevice(&devices[i], now, r)
	}
	return nil
}

// syncIdentityDevices reconciles the devices registered to one
// identity, creating missing assets and keeping the assignment link on
// existing ones. Fetch failures here are per-employee and never stop
// the run.
func (s *Service) syncIdentityDevices(ctx context.Context, identity *directory.Identity, owner *employee.Employee, now time.Time, r *Report) {
	devices, err := s.directory.ListDevicesForIdentity(ctx, identity.ID)
	if err != nil {
		s.logger.Warn("device listing for identity failed", "external_id", identity.ID, "error", err)
		r.recordError(KindFetch, "device-listing", identity.ID, err)
	}

	for i := range devices {
		if ctx.Err() != nil {
			return
		}
		s.reconcileOwnedDevice(&devices[i], owner, now, r)
	}
}

func (s *Service) reconcileOwnedDevice(device *directory.Device, owner *employee.Employee, now time.Time, r *Report) {
	cand, err := s.mapDevice(device, owner)
	if err != nil {
		r.recordError(KindMapping, "asset", deviceRef(device), err)
		return
	}

	existing, err := s.findAsset(cand)
	if err != nil {
		r.recordError(KindPersistence, "asset", deviceRef(device), err)
		return
	}

	if existing == nil {
		cand.ID = uuid.New().String()
		cand.Status = asset.StatusAssigned
		cand.AssignedToID = &owner.ID
		cand.LastSyncAt = &now
		if cand.RegisteredAt == nil && cand.PurchaseDate == nil {
			// seed an age reference so the health score is never guessed
			seeded := dateOnly(now)
			cand.PurchaseDate = &seeded
		}
		cand.CreatedAt = now
		cand.UpdatedAt = now
		if err := s.assets.Create(cand); err != nil {
			r.recordError(KindPersistence, "asset", deviceRef(device), err)
			return
		}
		s.logger.Info("asset created from user device",
			"asset_id", cand.ID, "serial", cand.SerialNumber, "owner_id", owner.ID)
		r.UserDevicesSynced++
		return
	}

	MergeAsset(existing, cand)
	if existing.AssignedToID == nil || *existing.AssignedToID != owner.ID {
		existing.AssignedToID = &owner.ID
	}
	if existing.Status != asset.StatusAssigned {
		existing.Status = asset.StatusAssigned
	}
	if existing.PurchaseDate == nil && existing.RegisteredAt == nil {
		seeded := dateOnly(now)
		existing.PurchaseDate = &seeded
	}
	existing.LastSyncAt = &now
	if err := s.assets.Update(existing); err != nil {
		r.recordError(KindPersistence, "asset", deviceRef(device), err)
		return
	}
	r.UserDevicesAssigned++
}

func (s *Service) reconcileStandaloneDevice(device *directory.Device, now time.Time, r *Report) {
	cand, err := s.mapDevice(device, nil)
	if err != nil {
		r.recordError(KindMapping, "asset", deviceRef(device), err)
		return
	}

	existing, err := s.findAsset(cand)
	if err != nil {
		r.recordError(KindPersistence, "asset", deviceRef(device), err)
		return
	}

	if existing == nil {
		cand.ID = uuid.New().String()
		cand.Status = asset.StatusAvailable
		cand.LastSyncAt = &now
		if cand.PurchaseDate == nil {
			seeded := dateOnly(now)
			if cand.RegisteredAt != nil {
				seeded = dateOnly(*cand.RegisteredAt)
			}
			cand.PurchaseDate = &seeded
		}
		cand.CreatedAt = now
		cand.UpdatedAt = now
		if err := s.assets.Create(cand); err != nil {
			r.recordError(KindPersistence, "asset", deviceRef(device), err)
			return
		}
		s.logger.Info("asset created from inventory device",
			"asset_id", cand.ID, "serial", cand.SerialNumber)
		r.StandaloneDevicesSynced++
		return
	}

	changed := MergeAsset(existing, cand)
	existing.LastSyncAt = &now
	if err := s.assets.Update(existing); err != nil {
		r.recordError(KindPersistence, "asset", deviceRef(device), err)
		return
	}
	if len(changed) > 0 {
		r.StandaloneDevicesUpdated++
	}
}

// syncAssignments re-links devices to their registered owner when the
// local assignment drifted. Both sides must already exist; missing
// records are left to the employee and device passes.
func (s *Service) syncAssignments(ctx context.Context, r *Report) error {
	identities, err := s.listIdentities(r, listingActiveIdentities, func() ([]directory.Identity, error) {
		return s.directory.ListActiveIdentities(ctx)
	})
	if err != nil {
		return err
	}

	now := s.now()
	for i := range identities {
		if err := ctx.Err(); err != nil {
			return err
		}

		emp, err := s.employees.GetByExternalID(identities[i].ID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			r.recordError(KindPersistence, "employee", identities[i].ID, err)
			continue
		}

		devices, err := s.directory.ListDevicesForIdentity(ctx, identities[i].ID)
		if err != nil {
			r.recordError(KindFetch, "device-listing", identities[i].ID, err)
		}

		for j := range devices {
			a, err := s.assets.GetByExternalID(devices[j].ID)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				r.recordError(KindPersistence, "asset", devices[j].ID, err)
				continue
			}
			if a.AssignedToID != nil && *a.AssignedToID == emp.ID && a.Status == asset.StatusAssigned {
				continue
			}
			a.AssignedToID = &emp.ID
			a.Status = asset.StatusAssigned
			a.LastSyncAt = &now
			if err := s.assets.Update(a); err != nil {
				r.recordError(KindPersistence, "asset", devices[j].ID, err)
				continue
			}
			s.logger.Info("assignment repaired", "asset_id", a.ID, "employee_id", emp.ID)
			r.AssignmentsUpdated++
		}
	}
	return nil
}

// mapDevice translates a directory device into an asset candidate.
// Serial numbers are mandatory locally, so devices without one get a
// synthesized serial derived from the directory object id.
func (s *Service) mapDevice(device *directory.Device, owner *employee.Employee) (*asset.Asset, error) {
	if device.ID == "" {
		return nil, fmt.Errorf("device has no id")
	}

	assetType := classifyDeviceType(device.OperatingSystem)

	serial := device.DeviceID
	if serial == "" {
		serial = serialFallbackPrefix + device.ID
	}

	name := device.DisplayName
	if name == "" {
		if owner != nil {
			name = fmt.Sprintf("%s's %s", owner.Name, titleCase(assetType))
		} else {
			name = serial
		}
	}

	externalID := device.ID
	cand := &asset.Asset{
		Name:         name,
		AssetType:    assetType,
		SerialNumber: serial,
		ExternalID:   &externalID,
		RegisteredAt: cloneTimePtr(device.RegisteredAt),
		LastSignInAt: cloneTimePtr(device.LastSignInAt),
	}
	if device.Model != "" {
		model := device.Model
		cand.Model = &model
	}
	if device.Manufacturer != "" {
		manufacturer := device.Manufacturer
		cand.Manufacturer = &manufacturer
	}
	if device.OperatingSystem != "" {
		operatingSystem := device.OperatingSystem
		cand.OperatingSystem = &operatingSystem
	}
	if device.OSVersion != "" {
		version := device.OSVersion
		cand.OSVersion = &version
	}

	return cand, nil
}

// findAsset locates the local twin of a device candidate by external id
// first, then by serial number for assets registered by hand before the
// directory link existed.
func (s *Service) findAsset(cand *asset.Asset) (*asset.Asset, error) {
	existing, err := s.assets.GetByExternalID(*cand.ExternalID)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	existing, err = s.assets.GetBySerialNumber(cand.SerialNumber)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	return nil, nil
}

func deviceRef(device *directory.Device) string {
	if device.ID != "" {
		return device.ID
	}
	if device.DeviceID != "" {
		return device.DeviceID
	}
	return device.DisplayName
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
