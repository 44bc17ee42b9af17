package dirsync_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/core/events"
	"github.com/Boateng555/assettrack-harren/internal/directory"
	"github.com/Boateng555/assettrack-harren/internal/dirsync"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

// Mock directory client for testing
type mockDirectory struct {
	active            []directory.Identity
	deleted           []directory.Identity
	devices           []directory.Device
	devicesByIdentity map[string][]directory.Device
	photoURLs         map[string]string

	activeErr  error
	deletedErr error
	devicesErr error
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		devicesByIdentity: make(map[string][]directory.Device),
		photoURLs:         make(map[string]string),
	}
}

func (m *mockDirectory) ListActiveIdentities(ctx context.Context) ([]directory.Identity, error) {
	return m.active, m.activeErr
}

func (m *mockDirectory) ListDeletedIdentities(ctx context.Context) ([]directory.Identity, error) {
	return m.deleted, m.deletedErr
}

func (m *mockDirectory) ListDevices(ctx context.Context) ([]directory.Device, error) {
	return m.devices, m.devicesErr
}

func (m *mockDirectory) ListDevicesForIdentity(ctx context.Context, identityID string) ([]directory.Device, error) {
	return m.devicesByIdentity[identityID], nil
}

func (m *mockDirectory) GetPhotoURL(ctx context.Context, identityID string) (string, error) {
	return m.photoURLs[identityID], nil
}

// Mock employee store for testing
type mockEmployeeStore struct {
	employees map[string]*employee.Employee

	createErr error
	updateErr error
}

func newMockEmployeeStore() *mockEmployeeStore {
	return &mockEmployeeStore{employees: make(map[string]*employee.Employee)}
}

func cloneEmployee(e *employee.Employee) *employee.Employee {
	clone := *e
	return &clone
}

func (m *mockEmployeeStore) GetByExternalID(externalID string) (*employee.Employee, error) {
	for _, e := range m.employees {
		if e.ExternalID != nil && *e.ExternalID == externalID {
			return cloneEmployee(e), nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockEmployeeStore) GetByEmail(email string) (*employee.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return cloneEmployee(e), nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockEmployeeStore) ListExternallyManaged() ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, e := range m.employees {
		if e.ExternalID != nil && *e.ExternalID != "" {
			out = append(out, cloneEmployee(e))
		}
	}
	return out, nil
}

func (m *mockEmployeeStore) Create(emp *employee.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.employees[emp.ID] = cloneEmployee(emp)
	return nil
}

func (m *mockEmployeeStore) Update(emp *employee.Employee) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.employees[emp.ID] = cloneEmployee(emp)
	return nil
}

func (m *mockEmployeeStore) UpdateStatus(id, status string, syncedAt time.Time) error {
	e, ok := m.employees[id]
	if !ok {
		return internal.ErrEmployeeNotFound
	}
	e.Status = status
	e.LastSyncAt = &syncedAt
	return nil
}

func (m *mockEmployeeStore) Count() (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeStore) CountByStatus(status string) (int64, error) {
	var n int64
	for _, e := range m.employees {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockEmployeeStore) CountExternallyManaged() (int64, error) {
	var n int64
	for _, e := range m.employees {
		if e.ExternalID != nil && *e.ExternalID != "" {
			n++
		}
	}
	return n, nil
}

// Mock asset store for testing; owner statuses come from the linked
// employee store so orphan listing behaves like the SQL join.
type mockAssetStore struct {
	assets    map[string]*asset.Asset
	employees *mockEmployeeStore

	createErr error
	updateErr error
}

func newMockAssetStore(employees *mockEmployeeStore) *mockAssetStore {
	return &mockAssetStore{
		assets:    make(map[string]*asset.Asset),
		employees: employees,
	}
}

func cloneAsset(a *asset.Asset) *asset.Asset {
	clone := *a
	return &clone
}

func (m *mockAssetStore) GetByExternalID(externalID string) (*asset.Asset, error) {
	for _, a := range m.assets {
		if a.ExternalID != nil && *a.ExternalID == externalID {
			return cloneAsset(a), nil
		}
	}
	return nil, internal.ErrAssetNotFound
}

func (m *mockAssetStore) GetBySerialNumber(serial string) (*asset.Asset, error) {
	for _, a := range m.assets {
		if a.SerialNumber == serial {
			return cloneAsset(a), nil
		}
	}
	return nil, internal.ErrAssetNotFound
}

func (m *mockAssetStore) Create(a *asset.Asset) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.assets[a.ID] = cloneAsset(a)
	return nil
}

func (m *mockAssetStore) Update(a *asset.Asset) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.assets[a.ID] = cloneAsset(a)
	return nil
}

func (m *mockAssetStore) ListAssignedToEmployeeStatuses(statuses []string) ([]*asset.Asset, error) {
	var out []*asset.Asset
	for _, a := range m.assets {
		if a.AssignedToID == nil {
			continue
		}
		owner, ok := m.employees.employees[*a.AssignedToID]
		if !ok {
			continue
		}
		for _, status := range statuses {
			if owner.Status == status {
				out = append(out, cloneAsset(a))
				break
			}
		}
	}
	return out, nil
}

func (m *mockAssetStore) Count() (int64, error) {
	return int64(len(m.assets)), nil
}

func (m *mockAssetStore) CountByStatus(status string) (int64, error) {
	var n int64
	for _, a := range m.assets {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

var _ = Describe("Sync Service", func() {
	var (
		dir       *mockDirectory
		employees *mockEmployeeStore
		assets    *mockAssetStore
		service   *dirsync.Service
		ctx       context.Context
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	BeforeEach(func() {
		dir = newMockDirectory()
		employees = newMockEmployeeStore()
		assets = newMockAssetStore(employees)
		bus := events.NewEventBus(testLogger)
		service = dirsync.NewService(dir, employees, assets, bus, "harren-group.com", testLogger)
		ctx = context.Background()
	})

	seedEmployee := func(id, externalID, email, status string) {
		employees.employees[id] = &employee.Employee{
			ID:         id,
			Name:       "Seeded " + id,
			Email:      email,
			Department: "IT",
			Status:     status,
			ExternalID: &externalID,
		}
	}

	Describe("SyncEmployees", func() {
		It("creates a new employee from an active identity", func() {
			dir.active = []directory.Identity{{
				ID:                "ext-jane",
				DisplayName:       "Jane Doe",
				Mail:              "jane.doe@harren-group.com",
				Department:        "Fleet Management",
				JobTitle:          "Fleet Manager",
				BusinessPhones:    []string{"+49 40 380380-916"},
				UserPrincipalName: "jane.doe@harren-group.com",
			}}

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesCreated).To(Equal(1))
			Expect(report.Errors).To(BeEmpty())

			created, err := employees.GetByExternalID("ext-jane")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Name).To(Equal("Jane Doe"))
			Expect(created.Status).To(Equal(employee.StatusActive))
			Expect(created.Department).To(Equal("Fleet Management"))
			Expect(created.OfficeLocation).To(Equal(employee.OfficeHamburg))
			Expect(created.JobTitle).NotTo(BeNil())
			Expect(created.LastSyncAt).NotTo(BeNil())
		})

		It("derives the department from the email domain when missing", func() {
			dir.active = []directory.Identity{
				{ID: "ext-1", DisplayName: "In House", Mail: "a@harren-group.com"},
				{ID: "ext-2", DisplayName: "Contractor", Mail: "b@vendor.example"},
			}

			_, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())

			internal1, _ := employees.GetByExternalID("ext-1")
			Expect(internal1.Department).To(Equal(employee.DepartmentInternal))

			external, _ := employees.GetByExternalID("ext-2")
			Expect(external.Department).To(Equal(employee.DepartmentExternal))
			Expect(external.OfficeLocation).To(Equal(employee.OfficeOther))
		})

		It("records a mapping error for identities without any email", func() {
			dir.active = []directory.Identity{{ID: "ext-broken", DisplayName: "No Mail"}}

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesCreated).To(Equal(0))
			Expect(report.Errors).To(HaveLen(1))
			Expect(report.Errors[0].Kind).To(Equal(dirsync.KindMapping))
			Expect(report.Errors[0].Ref).To(Equal("ext-broken"))
		})

		It("links pre-existing manual records by email", func() {
			employees.employees["local-1"] = &employee.Employee{
				ID:     "local-1",
				Name:   "Hand Entered",
				Email:  "jane.doe@harren-group.com",
				Status: employee.StatusActive,
			}
			dir.active = []directory.Identity{{
				ID:          "ext-jane",
				DisplayName: "Jane Doe",
				Mail:        "jane.doe@harren-group.com",
			}}

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesCreated).To(Equal(0))
			Expect(report.EmployeesUpdated).To(Equal(1))

			linked := employees.employees["local-1"]
			Expect(linked.ExternalID).NotTo(BeNil())
			Expect(*linked.ExternalID).To(Equal("ext-jane"))
		})

		It("disables employees that vanished from the directory", func() {
			seedEmployee("local-x", "X123", "x@harren-group.com", employee.StatusActive)

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesDisabled).To(Equal(1))
			Expect(employees.employees["local-x"].Status).To(Equal(employee.StatusInactive))

			// second run: already inactive, nothing to count
			report, err = service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesDisabled).To(Equal(0))
		})

		It("marks employees from the deleted listing as deleted", func() {
			seedEmployee("local-d", "ext-gone", "gone@harren-group.com", employee.StatusActive)
			dir.deleted = []directory.Identity{{ID: "ext-gone", DisplayName: "Gone"}}

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesDeleted).To(Equal(1))
			Expect(employees.employees["local-d"].Status).To(Equal(employee.StatusDeleted))

			report, err = service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesDeleted).To(Equal(0))
		})

		It("reactivates a disabled employee that reappears as active", func() {
			seedEmployee("local-r", "ext-back", "back@harren-group.com", employee.StatusInactive)
			dir.active = []directory.Identity{{
				ID:          "ext-back",
				DisplayName: "Seeded local-r",
				Mail:        "back@harren-group.com",
			}}

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesUpdated).To(Equal(1))
			Expect(employees.employees["local-r"].Status).To(Equal(employee.StatusActive))
		})

		It("aborts before any mutation when authentication fails", func() {
			seedEmployee("local-x", "X123", "x@harren-group.com", employee.StatusActive)
			dir.activeErr = &directory.AuthError{Err: errors.New("invalid client secret")}

			report, err := service.SyncEmployees(ctx)
			Expect(err).To(HaveOccurred())
			Expect(directory.IsAuthError(err)).To(BeTrue())
			Expect(report.EmployeesCreated).To(BeZero())
			Expect(report.EmployeesDisabled).To(BeZero())
			Expect(employees.employees["local-x"].Status).To(Equal(employee.StatusActive))
		})

		It("skips disable detection when the active listing is truncated", func() {
			seedEmployee("local-x", "X123", "x@harren-group.com", employee.StatusActive)
			dir.active = []directory.Identity{{
				ID: "ext-partial", DisplayName: "Partial", Mail: "p@harren-group.com",
			}}
			dir.activeErr = &directory.TransientFetchError{
				Op: "list users", Fetched: 1, Err: errors.New("status 503"),
			}

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.TruncatedListings).To(ContainElement("active identities"))
			Expect(report.EmployeesCreated).To(Equal(1))
			Expect(report.EmployeesDisabled).To(BeZero())
			Expect(employees.employees["local-x"].Status).To(Equal(employee.StatusActive))
		})

		It("creates assigned assets for an identity's registered devices", func() {
			dir.active = []directory.Identity{{
				ID: "ext-jane", DisplayName: "Jane Doe", Mail: "jane.doe@harren-group.com",
			}}
			dir.devicesByIdentity["ext-jane"] = []directory.Device{
				{
					ID:              "dev-1",
					DisplayName:     "JANES-IPHONE",
					DeviceID:        "serial-1",
					OperatingSystem: "iOS",
					Manufacturer:    "Apple",
				},
				{
					ID:              "dev-2",
					OperatingSystem: "Windows",
				},
			}

			report, err := service.SyncEmployees(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.UserDevicesSynced).To(Equal(2))

			owner, _ := employees.GetByExternalID("ext-jane")

			phone, err := assets.GetByExternalID("dev-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(phone.AssetType).To(Equal(asset.TypePhone))
			Expect(phone.Status).To(Equal(asset.StatusAssigned))
			Expect(phone.AssignedToID).NotTo(BeNil())
			Expect(*phone.AssignedToID).To(Equal(owner.ID))

			// no deviceId and no display name: synthesized serial and owner name
			laptop, err := assets.GetByExternalID("dev-2")
			Expect(err).NotTo(HaveOccurred())
			Expect(laptop.AssetType).To(Equal(asset.TypeLaptop))
			Expect(laptop.SerialNumber).To(Equal("DIR_dev-2"))
			Expect(laptop.Name).To(Equal("Jane Doe's Laptop"))
			Expect(laptop.PurchaseDate).NotTo(BeNil())
		})
	})

	Describe("SyncDevices", func() {
		It("creates unknown devices as available stock", func() {
			dir.devices = []directory.Device{{
				ID:              "dev-5",
				DisplayName:     "POOL-NB-05",
				DeviceID:        "serial-5",
				OperatingSystem: "Windows",
			}}

			report, err := service.SyncDevices(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.StandaloneDevicesSynced).To(Equal(1))

			a, err := assets.GetByExternalID("dev-5")
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Status).To(Equal(asset.StatusAvailable))
			Expect(a.AssignedToID).To(BeNil())
		})

		It("matches manually registered assets by serial number", func() {
			assets.assets["manual-1"] = &asset.Asset{
				ID:           "manual-1",
				Name:         "Hand Registered",
				AssetType:    asset.TypeLaptop,
				SerialNumber: "serial-5",
				Status:       asset.StatusAvailable,
			}
			dir.devices = []directory.Device{{
				ID:              "dev-5",
				DisplayName:     "POOL-NB-05",
				DeviceID:        "serial-5",
				OperatingSystem: "Windows",
			}}

			report, err := service.SyncDevices(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.StandaloneDevicesSynced).To(Equal(0))
			Expect(report.StandaloneDevicesUpdated).To(Equal(1))

			a := assets.assets["manual-1"]
			Expect(a.ExternalID).NotTo(BeNil())
			Expect(*a.ExternalID).To(Equal("dev-5"))
		})
	})

	Describe("SyncAssignments", func() {
		It("repairs a drifted assignment link", func() {
			seedEmployee("emp-1", "ext-jane", "jane@harren-group.com", employee.StatusActive)
			externalID := "dev-1"
			assets.assets["asset-1"] = &asset.Asset{
				ID:           "asset-1",
				Name:         "Laptop",
				AssetType:    asset.TypeLaptop,
				SerialNumber: "serial-1",
				Status:       asset.StatusAvailable,
				ExternalID:   &externalID,
			}
			dir.active = []directory.Identity{{ID: "ext-jane", DisplayName: "Jane", Mail: "jane@harren-group.com"}}
			dir.devicesByIdentity["ext-jane"] = []directory.Device{{ID: "dev-1", OperatingSystem: "Windows"}}

			report, err := service.SyncAssignments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.AssignmentsUpdated).To(Equal(1))

			a := assets.assets["asset-1"]
			Expect(a.Status).To(Equal(asset.StatusAssigned))
			Expect(a.AssignedToID).NotTo(BeNil())
			Expect(*a.AssignedToID).To(Equal("emp-1"))

			report, err = service.SyncAssignments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.AssignmentsUpdated).To(Equal(0))
		})
	})

	Describe("CleanupOrphans", func() {
		It("releases assets held by inactive and deleted employees", func() {
			seedEmployee("emp-gone", "ext-gone", "gone@harren-group.com", employee.StatusInactive)
			ownerID := "emp-gone"
			assets.assets["asset-1"] = &asset.Asset{
				ID:           "asset-1",
				Name:         "Orphaned Laptop",
				AssetType:    asset.TypeLaptop,
				SerialNumber: "serial-1",
				Status:       asset.StatusAssigned,
				AssignedToID: &ownerID,
			}

			report, err := service.CleanupOrphans(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.AssetsCleanedUp).To(Equal(1))

			a := assets.assets["asset-1"]
			Expect(a.Status).To(Equal(asset.StatusAvailable))
			Expect(a.AssignedToID).To(BeNil())

			report, err = service.CleanupOrphans(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.AssetsCleanedUp).To(Equal(0))
		})
	})

	Describe("FullSync", func() {
		fullDirectory := func() {
			dir.active = []directory.Identity{
				{
					ID:             "ext-jane",
					DisplayName:    "Jane Doe",
					Mail:           "jane.doe@harren-group.com",
					Department:     "Fleet Management",
					BusinessPhones: []string{"+49 421 52009-0"},
				},
				{
					ID:          "ext-tom",
					DisplayName: "Tom Contractor",
					Mail:        "tom@vendor.example",
				},
			}
			dir.devicesByIdentity["ext-jane"] = []directory.Device{
				{ID: "dev-1", DisplayName: "JANE-NB", DeviceID: "serial-1", OperatingSystem: "Windows"},
			}
			dir.devices = []directory.Device{
				{ID: "dev-1", DisplayName: "JANE-NB", DeviceID: "serial-1", OperatingSystem: "Windows"},
				{ID: "dev-9", DisplayName: "POOL-TAB", DeviceID: "serial-9", OperatingSystem: "Android"},
			}
		}

		It("runs all passes and reports combined counters", func() {
			fullDirectory()

			report, err := service.FullSync(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesCreated).To(Equal(2))
			Expect(report.UserDevicesSynced).To(Equal(1))
			Expect(report.StandaloneDevicesSynced).To(Equal(1))
			Expect(report.Errors).To(BeEmpty())
			Expect(report.FinishedAt).NotTo(BeZero())
		})

		It("is idempotent: a second identical run changes nothing", func() {
			fullDirectory()

			_, err := service.FullSync(ctx)
			Expect(err).NotTo(HaveOccurred())

			report, err := service.FullSync(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.EmployeesCreated).To(BeZero())
			Expect(report.EmployeesUpdated).To(BeZero())
			Expect(report.EmployeesDisabled).To(BeZero())
			Expect(report.EmployeesDeleted).To(BeZero())
			Expect(report.UserDevicesSynced).To(BeZero())
			Expect(report.StandaloneDevicesSynced).To(BeZero())
			Expect(report.StandaloneDevicesUpdated).To(BeZero())
			Expect(report.AssignmentsUpdated).To(BeZero())
			Expect(report.AssetsCleanedUp).To(BeZero())
		})

		It("stops at a cancelled context", func() {
			fullDirectory()
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			report, err := service.FullSync(cancelled)
			Expect(err).To(MatchError(context.Canceled))
			Expect(report).NotTo(BeNil())
		})

		It("never leaves an asset assigned to a non-active employee", func() {
			fullDirectory()
			_, err := service.FullSync(ctx)
			Expect(err).NotTo(HaveOccurred())

			// Jane leaves the company
			dir.active = dir.active[1:]
			delete(dir.devicesByIdentity, "ext-jane")
			dir.devices = dir.devices[1:]

			_, err = service.FullSync(ctx)
			Expect(err).NotTo(HaveOccurred())

			for _, a := range assets.assets {
				if a.AssignedToID == nil {
					continue
				}
				owner := employees.employees[*a.AssignedToID]
				Expect(owner).NotTo(BeNil())
				Expect(owner.Status).To(Equal(employee.StatusActive),
					"asset %s still assigned to %s employee", a.SerialNumber, owner.Status)
			}
		})
	})

	Describe("Summary", func() {
		It("combines registry counts with the directory identity count", func() {
			seedEmployee("emp-1", "ext-1", "a@harren-group.com", employee.StatusActive)
			seedEmployee("emp-2", "ext-2", "b@harren-group.com", employee.StatusInactive)
			dir.active = []directory.Identity{{ID: "ext-1"}}

			summary, err := service.Summary(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.RemoteIdentities).To(Equal(1))
			Expect(summary.LocalEmployees).To(Equal(int64(2)))
			Expect(summary.SyncedEmployees).To(Equal(int64(2)))
			Expect(summary.ActiveEmployees).To(Equal(int64(1)))
			Expect(summary.InactiveEmployees).To(Equal(int64(1)))
		})

		It("still returns local counts when the directory is down", func() {
			seedEmployee("emp-1", "ext-1", "a@harren-group.com", employee.StatusActive)
			dir.activeErr = errors.New("connection refused")

			summary, err := service.Summary(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.RemoteIdentities).To(Equal(-1))
			Expect(summary.LocalEmployees).To(Equal(int64(1)))
		})
	})
})
