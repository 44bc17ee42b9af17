package dirsync

import (
	"context"
	"fmt"

	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/core/events"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

// cleanupOrphans releases every asset still assigned to an employee who
// is no longer active. Released assets go back to available stock and
// an unassignment event is published for each.
func (s *Service) cleanupOrphans(ctx context.Context, r *Report) error {
	orphaned, err := s.assets.ListAssignedToEmployeeStatuses([]string{
		employee.StatusInactive,
		employee.StatusDeleted,
	})
	if err != nil {
		return fmt.Errorf("listing orphaned assets: %w", err)
	}

	now := s.now()
	for _, a := range orphaned {
		if err := ctx.Err(); err != nil {
			return err
		}

		var fromEmployee string
		if a.AssignedToID != nil {
			fromEmployee = *a.AssignedToID
		}

		a.AssignedToID = nil
		a.Status = asset.StatusAvailable
		a.LastSyncAt = &now
		if err := s.assets.Update(a); err != nil {
			r.recordError(KindPersistence, "asset", a.ID, err)
			continue
		}

		s.logger.Info("asset released from departed employee",
			"asset_id", a.ID, "serial", a.SerialNumber, "employee_id", fromEmployee)
		r.AssetsCleanedUp++

		if s.bus != nil {
			event := events.NewAssetUnassignedEvent(a.ID, a.Name, fromEmployee)
			if err := s.bus.Publish(ctx, event); err != nil {
				s.logger.Error("failed to publish asset unassigned event", "error", err, "asset_id", a.ID)
			}
		}
	}
	return nil
}
