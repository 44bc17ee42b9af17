package dirsync

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Boateng555/assettrack-harren/internal/directory"
	"github.com/Boateng555/assettrack-harren/internal/employee"
	"github.com/google/uuid"
)

const (
	listingActiveIdentities  = "active identities"
	listingDeletedIdentities = "deleted identities"
	listingDevices           = "devices"
)

// syncEmployees pulls active and deleted identities and reconciles the
// local employee registry against them. Each active identity also gets
// its registered devices reconciled, so one pass leaves both sides of
// an employment relationship consistent.
func (s *Service) syncEmployees(ctx context.Context, r *Report) error {
	active, err := s.listIdentities(r, listingActiveIdentities, func() ([]directory.Identity, error) {
		return s.directory.ListActiveIdentities(ctx)
	})
	if err != nil {
		return err
	}
	deleted, err := s.listIdentities(r, listingDeletedIdentities, func() ([]directory.Identity, error) {
		return s.directory.ListDeletedIdentities(ctx)
	})
	if err != nil {
		return err
	}

	now := s.now()

	activeIDs := make(map[string]struct{}, len(active))
	for i := range active {
		if err := ctx.Err(); err != nil {
			return err
		}
		activeIDs[active[i].ID] = struct{}{}
		s.reconcileIdentity(ctx, &active[i], now, r)
	}

	deletedIDs := make(map[string]struct{}, len(deleted))
	for i := range deleted {
		deletedIDs[deleted[i].ID] = struct{}{}
	}

	locals, err := s.employees.ListExternallyManaged()
	if err != nil {
		return fmt.Errorf("listing local employees: %w", err)
	}

	// Disable detection is a set difference over the full remote state,
	// so it must not run against a truncated listing. A partial pull
	// would otherwise disable every employee the pull happened to miss.
	if !r.wasTruncated(listingActiveIdentities) && !r.wasTruncated(listingDeletedIdentities) {
		for _, local := range locals {
			if err := ctx.Err(); err != nil {
				return err
			}
			extID := *local.ExternalID
			if _, ok := activeIDs[extID]; ok {
				continue
			}
			if _, ok := deletedIDs[extID]; ok {
				continue
			}
			if local.Status == employee.StatusInactive || local.Status == employee.StatusDeleted {
				continue
			}
			if err := s.employees.UpdateStatus(local.ID, employee.StatusInactive, now); err != nil {
				r.recordError(KindPersistence, "employee", extID, err)
				continue
			}
			s.logger.Info("employee disabled", "employee_id", local.ID, "external_id", extID)
			r.EmployeesDisabled++
		}
	}

	for i := range deleted {
		if err := ctx.Err(); err != nil {
			return err
		}
		local, err := s.employees.GetByExternalID(deleted[i].ID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			r.recordError(KindPersistence, "employee", deleted[i].ID, err)
			continue
		}
		if local.Status == employee.StatusDeleted {
			continue
		}
		if err := s.employees.UpdateStatus(local.ID, employee.StatusDeleted, now); err != nil {
			r.recordError(KindPersistence, "employee", deleted[i].ID, err)
			continue
		}
		s.logger.Info("employee marked deleted", "employee_id", local.ID, "external_id", deleted[i].ID)
		r.EmployeesDeleted++
	}

	return nil
}

// listIdentities normalizes a directory pull: auth failures abort the
// run, transient failures keep whatever pages arrived and mark the
// listing as truncated.
func (s *Service) listIdentities(r *Report, listing string, pull func() ([]directory.Identity, error)) ([]directory.Identity, error) {
	identities, err := pull()
	if err == nil {
		return identities, nil
	}
	if directory.IsAuthError(err) {
		return nil, err
	}
	s.logger.Warn("directory listing truncated", "listing", listing, "fetched", len(identities), "error", err)
	r.noteTruncation(listing)
	r.recordError(KindFetch, "listing", listing, err)
	return identities, nil
}

func (s *Service) reconcileIdentity(ctx context.Context, identity *directory.Identity, now time.Time, r *Report) {
	cand, err := s.mapIdentity(ctx, identity)
	if err != nil {
		s.logger.Warn("skipping identity", "external_id", identity.ID, "error", err)
		r.recordError(KindMapping, "employee", identityRef(identity), err)
		return
	}

	emp, created, changed, err := s.upsertEmployee(cand, now)
	if err != nil {
		s.logger.Error("failed to persist employee", "external_id", identity.ID, "error", err)
		r.recordError(KindPersistence, "employee", identityRef(identity), err)
		return
	}

	if created {
		s.logger.Info("employee created", "employee_id", emp.ID, "email", emp.Email)
		r.EmployeesCreated++
	} else if changed {
		r.EmployeesUpdated++
	}

	s.syncIdentityDevices(ctx, identity, emp, now, r)
}

// mapIdentity translates a directory identity into an employee
// candidate. Identities without any usable email cannot be reconciled
// and are rejected.
func (s *Service) mapIdentity(ctx context.Context, identity *directory.Identity) (*employee.Employee, error) {
	if identity.ID == "" {
		return nil, fmt.Errorf("identity has no id")
	}

	email := identity.Mail
	if email == "" {
		email = identity.UserPrincipalName
	}
	if email == "" {
		return nil, fmt.Errorf("identity %s (%s) has no email", identity.ID, identity.DisplayName)
	}

	department := identity.Department
	if department == "" {
		if s.companyDomain != "" && strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(s.companyDomain)) {
			department = employee.DepartmentInternal
		} else {
			department = employee.DepartmentExternal
		}
	}

	phone := identity.MobilePhone
	if len(identity.BusinessPhones) > 0 && identity.BusinessPhones[0] != "" {
		phone = identity.BusinessPhones[0]
	}

	name := identity.DisplayName
	if name == "" {
		name = email
	}

	avatarURL, err := s.directory.GetPhotoURL(ctx, identity.ID)
	if err != nil {
		s.logger.Debug("photo lookup failed", "external_id", identity.ID, "error", err)
	}
	if avatarURL == "" {
		avatarURL = placeholderAvatarURL(name)
	}

	externalID := identity.ID
	cand := &employee.Employee{
		Name:           name,
		Email:          email,
		Department:     department,
		Phone:          phone,
		AvatarURL:      avatarURL,
		ExternalID:     &externalID,
		OfficeLocation: DeriveOffice(phone, department),
	}
	if identity.UserPrincipalName != "" {
		upn := identity.UserPrincipalName
		cand.ExternalUsername = &upn
	}
	if identity.JobTitle != "" {
		title := identity.JobTitle
		cand.JobTitle = &title
	}
	if identity.EmployeeID != "" {
		number := identity.EmployeeID
		cand.EmployeeNumber = &number
	}

	return cand, nil
}

// upsertEmployee finds the local record by external id, falling back to
// email for records created before the directory link existed, then
// merges or creates. An identity seen in the active listing always ends
// up active, so previously disabled employees are reactivated here.
func (s *Service) upsertEmployee(cand *employee.Employee, now time.Time) (emp *employee.Employee, created, changed bool, err error) {
	existing, err := s.employees.GetByExternalID(*cand.ExternalID)
	if err != nil && isNotFound(err) {
		existing, err = s.employees.GetByEmail(cand.Email)
		if err != nil && isNotFound(err) {
			existing, err = nil, nil
		}
	}
	if err != nil {
		return nil, false, false, err
	}

	if existing == nil {
		cand.ID = uuid.New().String()
		cand.Status = employee.StatusActive
		if cand.OfficeLocation == "" {
			cand.OfficeLocation = employee.OfficeBernem
		}
		cand.LastSyncAt = &now
		cand.CreatedAt = now
		cand.UpdatedAt = now
		if err := s.employees.Create(cand); err != nil {
			return nil, false, false, err
		}
		return cand, true, false, nil
	}

	changedFields := MergeEmployee(existing, cand)
	if existing.OfficeLocation == "" && cand.OfficeLocation != "" {
		existing.OfficeLocation = cand.OfficeLocation
		changedFields = append(changedFields, "office_location")
	}
	if existing.Status != employee.StatusActive {
		s.logger.Info("employee reactivated", "employee_id", existing.ID, "previous_status", existing.Status)
		existing.Status = employee.StatusActive
		changedFields = append(changedFields, "status")
	}

	// last_sync_at is re-stamped on every run and deliberately not
	// treated as a change, otherwise no run could ever be a no-op.
	existing.LastSyncAt = &now
	if err := s.employees.Update(existing); err != nil {
		return nil, false, false, err
	}

	return existing, false, len(changedFields) > 0, nil
}

func identityRef(identity *directory.Identity) string {
	if identity.ID != "" {
		return identity.ID
	}
	if identity.UserPrincipalName != "" {
		return identity.UserPrincipalName
	}
	return identity.DisplayName
}

func placeholderAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=0D8ABC&color=fff"
}
