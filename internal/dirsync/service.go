package dirsync

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/core/events"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

// Service drives reconciliation of the local registry against the
// directory service. At most one run executes at a time; overlapping
// requests are rejected with ErrSyncInProgress.
type Service struct {
	directory DirectoryAPI
	employees EmployeeStore
	assets    AssetStore
	bus       *events.EventBus
	logger    *slog.Logger

	companyDomain string
	now           func() time.Time

	mu stdsync.Mutex
}

func NewService(dir DirectoryAPI, employees EmployeeStore, assets AssetStore, bus *events.EventBus, companyDomain string, logger *slog.Logger) *Service {
	return &Service{
		directory:     dir,
		employees:     employees,
		assets:        assets,
		bus:           bus,
		companyDomain: companyDomain,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *Service) begin() (*Report, error) {
	if !s.mu.TryLock() {
		return nil, internal.ErrSyncInProgress
	}
	return &Report{StartedAt: s.now()}, nil
}

func (s *Service) finish(r *Report) *Report {
	r.FinishedAt = s.now()
	s.mu.Unlock()
	return r
}

// FullSync runs all reconciliation passes in order: employees (with
// their devices), standalone devices, assignments, orphan cleanup.
func (s *Service) FullSync(ctx context.Context) (*Report, error) {
	r, err := s.begin()
	if err != nil {
		return nil, err
	}

	s.logger.Info("full sync started")

	for _, pass := range []func(context.Context, *Report) error{
		s.syncEmployees,
		s.syncDevices,
		s.syncAssignments,
		s.cleanupOrphans,
	} {
		if err := pass(ctx, r); err != nil {
			s.logger.Error("full sync aborted", "error", err)
			return s.finish(r), err
		}
	}

	s.finish(r)
	s.publishCompleted(ctx, r)
	s.logger.Info("full sync finished",
		"employees_created", r.EmployeesCreated,
		"employees_updated", r.EmployeesUpdated,
		"employees_disabled", r.EmployeesDisabled,
		"employees_deleted", r.EmployeesDeleted,
		"user_devices_synced", r.UserDevicesSynced,
		"standalone_devices_synced", r.StandaloneDevicesSynced,
		"assignments_updated", r.AssignmentsUpdated,
		"assets_cleaned_up", r.AssetsCleanedUp,
		"errors", len(r.Errors),
	)
	return r, nil
}

// SyncEmployees reconciles employees (and their registered devices) only.
func (s *Service) SyncEmployees(ctx context.Context) (*Report, error) {
	return s.runOne(ctx, s.syncEmployees)
}

// SyncDevices reconciles the standalone device inventory only.
func (s *Service) SyncDevices(ctx context.Context) (*Report, error) {
	return s.runOne(ctx, s.syncDevices)
}

// SyncAssignments repairs device-to-employee assignment links only.
func (s *Service) SyncAssignments(ctx context.Context) (*Report, error) {
	return s.runOne(ctx, s.syncAssignments)
}

// CleanupOrphans releases assets still assigned to inactive or deleted
// employees.
func (s *Service) CleanupOrphans(ctx context.Context) (*Report, error) {
	return s.runOne(ctx, s.cleanupOrphans)
}

func (s *Service) runOne(ctx context.Context, pass func(context.Context, *Report) error) (*Report, error) {
	r, err := s.begin()
	if err != nil {
		return nil, err
	}
	if err := pass(ctx, r); err != nil {
		return s.finish(r), err
	}
	s.finish(r)
	s.publishCompleted(ctx, r)
	return r, nil
}

func (s *Service) publishCompleted(ctx context.Context, r *Report) {
	if s.bus == nil {
		return
	}
	event := events.NewSyncCompletedEvent(
		r.EmployeesCreated,
		r.EmployeesUpdated,
		r.EmployeesDisabled,
		r.EmployeesDeleted,
		r.AssetsCleanedUp,
		len(r.Errors),
	)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish sync completed event", "error", err)
	}
}

// Summary reports registry counts side by side with the directory's
// current identity count. The remote count is -1 when the directory is
// unreachable; the local counts are still returned.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	sum := &Summary{RemoteIdentities: -1, GeneratedAt: s.now()}

	if identities, err := s.directory.ListActiveIdentities(ctx); err == nil {
		sum.RemoteIdentities = len(identities)
	} else {
		s.logger.Warn("summary: directory unreachable", "error", err)
	}

	var err error
	if sum.LocalEmployees, err = s.employees.Count(); err != nil {
		return nil, err
	}
	if sum.SyncedEmployees, err = s.employees.CountExternallyManaged(); err != nil {
		return nil, err
	}
	if sum.ActiveEmployees, err = s.employees.CountByStatus(employee.StatusActive); err != nil {
		return nil, err
	}
	if sum.InactiveEmployees, err = s.employees.CountByStatus(employee.StatusInactive); err != nil {
		return nil, err
	}
	if sum.DeletedEmployees, err = s.employees.CountByStatus(employee.StatusDeleted); err != nil {
		return nil, err
	}
	if sum.TotalAssets, err = s.assets.Count(); err != nil {
		return nil, err
	}
	if sum.AssignedAssets, err = s.assets.CountByStatus(asset.StatusAssigned); err != nil {
		return nil, err
	}
	if sum.AvailableAssets, err = s.assets.CountByStatus(asset.StatusAvailable); err != nil {
		return nil, err
	}

	return sum, nil
}
