package asset

import "time"

// UnknownAgeScore is the moderate score assumed when no reference date
// exists at all.
const UnknownAgeScore = 50

// ReferenceDate selects the date that represents an asset's age. The
// priority chain is fixed: directory registration date, then last sync
// date, then the manually recorded purchase date. The same chain is
// applied at creation time and at every recomputation so scores stay
// stable across repeated syncs.
func ReferenceDate(a *Asset) *time.Time {
	switch {
	case a.RegisteredAt != nil:
		return a.RegisteredAt
	case a.LastSyncAt != nil:
		return a.LastSyncAt
	case a.PurchaseDate != nil:
		return a.PurchaseDate
	default:
		return nil
	}
}

// HealthScore maps the age of the reference date to a 0-100 freshness
// score. Monotonic non-increasing in age.
func HealthScore(reference *time.Time, today time.Time) int {
	if reference == nil {
		return UnknownAgeScore
	}

	ageDays := int(today.Sub(*reference).Hours() / 24)

	switch {
	case ageDays < 30:
		return 100
	case ageDays < 90:
		return 95
	case ageDays < 180:
		return 90
	case ageDays < 365:
		return 85
	case ageDays < 730:
		return 75
	case ageDays < 1095:
		return 65
	case ageDays < 1460:
		return 55
	case ageDays < 1825:
		return 45
	default:
		return 35
	}
}

// ComputeHealth fills in the transient health score for an asset.
func ComputeHealth(a *Asset, today time.Time) {
	a.HealthScore = HealthScore(ReferenceDate(a), today)
}
