package dirsync

import "time"

type ErrorKind string

const (
	KindMapping     ErrorKind = "mapping"
	KindPersistence ErrorKind = "persistence"
	KindFetch       ErrorKind = "fetch"
)

// RecordError is one per-record failure collected during a run. A run
// never aborts for these; they are reported instead.
type RecordError struct {
	Kind    ErrorKind `json:"kind"`
	Entity  string    `json:"entity"`
	Ref     string    `json:"ref"`
	Message string    `json:"message"`
}

// Report aggregates all counters and failures of one reconciliation run.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	EmployeesCreated  int `json:"employees_created"`
	EmployeesUpdated  int `json:"employees_updated"`
	EmployeesDisabled int `json:"employees_disabled"`
	EmployeesDeleted  int `json:"employees_deleted"`

	UserDevicesSynced   int `json:"user_devices_synced"`
	UserDevicesAssigned int `json:"user_devices_assigned"`

	StandaloneDevicesSynced  int `json:"standalone_devices_synced"`
	StandaloneDevicesUpdated int `json:"standalone_devices_updated"`

	AssignmentsUpdated int `json:"assignments_updated"`
	AssetsCleanedUp    int `json:"assets_cleaned_up"`

	// listings cut short by transient directory failures
	TruncatedListings []string `json:"truncated_listings,omitempty"`

	Errors []RecordError `json:"errors,omitempty"`
}

func (r *Report) recordError(kind ErrorKind, entity, ref string, err error) {
	r.Errors = append(r.Errors, RecordError{
		Kind:    kind,
		Entity:  entity,
		Ref:     ref,
		Message: err.Error(),
	})
}

func (r *Report) noteTruncation(listing string) {
	for _, existing := range r.TruncatedListings {
		if existing == listing {
			return
		}
	}
	r.TruncatedListings = append(r.TruncatedListings, listing)
}

func (r *Report) wasTruncated(listing string) bool {
	for _, existing := range r.TruncatedListings {
		if existing == listing {
			return true
		}
	}
	return false
}

// Summary is the read-only view of the registry versus the directory.
type Summary struct {
	RemoteIdentities  int       `json:"remote_identities"`
	LocalEmployees    int64     `json:"local_employees"`
	SyncedEmployees   int64     `json:"synced_employees"`
	ActiveEmployees   int64     `json:"active_employees"`
	InactiveEmployees int64     `json:"inactive_employees"`
	DeletedEmployees  int64     `json:"deleted_employees"`
	TotalAssets       int64     `json:"total_assets"`
	AssignedAssets    int64     `json:"assigned_assets"`
	AvailableAssets   int64     `json:"available_assets"`
	GeneratedAt       time.Time `json:"generated_at"`
}
