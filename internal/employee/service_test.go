package employee_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Suite")
}

// Mock repository for testing
type mockEmployeeRepository struct {
	employees map[string]*employee.Employee

	createErr error
	updateErr error

	deletedIDs     []string
	statusChanges  map[string]string
	lastStatusSync time.Time
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees:     make(map[string]*employee.Employee),
		statusChanges: make(map[string]string),
	}
}

func (m *mockEmployeeRepository) Create(emp *employee.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) Update(emp *employee.Employee) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) GetByID(id string) (*employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeRepository) GetByExternalID(externalID string) (*employee.Employee, error) {
	for _, e := range m.employees {
		if e.ExternalID != nil && *e.ExternalID == externalID {
			return e, nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockEmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockEmployeeRepository) GetAll(limit, offset int) ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEmployeeRepository) GetByStatus(status string, limit, offset int) ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, e := range m.employees {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepository) ListExternallyManaged() ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, e := range m.employees {
		if e.ExternalID != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepository) UpdateStatus(id, status string, syncedAt time.Time) error {
	m.statusChanges[id] = status
	m.lastStatusSync = syncedAt
	if e, ok := m.employees[id]; ok {
		e.Status = status
	}
	return nil
}

func (m *mockEmployeeRepository) Delete(id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepository) Count() (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeRepository) CountByStatus(status string) (int64, error) {
	var n int64
	for _, e := range m.employees {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockEmployeeRepository) CountExternallyManaged() (int64, error) {
	var n int64
	for _, e := range m.employees {
		if e.ExternalID != nil {
			n++
		}
	}
	return n, nil
}

// Mock photo fetcher for testing
type mockPhotoFetcher struct {
	photos map[string][]byte
	err    error
}

func (m *mockPhotoFetcher) GetPhotoBytes(ctx context.Context, identityID string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.photos[identityID], nil
}

var _ = Describe("Employee Service", func() {
	var (
		repo    *mockEmployeeRepository
		photos  *mockPhotoFetcher
		service *employee.Service
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	strPtr := func(s string) *string { return &s }

	BeforeEach(func() {
		repo = newMockEmployeeRepository()
		photos = &mockPhotoFetcher{photos: make(map[string][]byte)}
		service = employee.NewService(repo, photos, testLogger)
	})

	Describe("CreateEmployee", func() {
		It("creates an active employee with the default office", func() {
			emp, err := service.CreateEmployee(employee.CreateEmployeeDTO{
				Name:  "Anna Petersen",
				Email: "anna@harren-group.com",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(emp.ID).NotTo(BeEmpty())
			Expect(emp.Status).To(Equal(employee.StatusActive))
			Expect(emp.OfficeLocation).To(Equal(employee.OfficeBernem))
		})

		It("rejects duplicate emails", func() {
			_, err := service.CreateEmployee(employee.CreateEmployeeDTO{
				Name: "Anna", Email: "anna@harren-group.com",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateEmployee(employee.CreateEmployeeDTO{
				Name: "Other Anna", Email: "anna@harren-group.com",
			})
			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
		})

		It("rejects invalid input", func() {
			_, err := service.CreateEmployee(employee.CreateEmployeeDTO{Name: "No Email"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListEmployees", func() {
		It("rejects unknown status filters", func() {
			_, err := service.ListEmployees("fired", 50, 0)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeleteEmployee", func() {
		It("hard-deletes manually created employees", func() {
			repo.employees["local-1"] = &employee.Employee{
				ID: "local-1", Name: "Manual", Email: "m@harren-group.com",
				Status: employee.StatusActive,
			}

			Expect(service.DeleteEmployee("local-1")).To(Succeed())
			Expect(repo.deletedIDs).To(ContainElement("local-1"))
		})

		It("soft-deletes directory-managed employees", func() {
			repo.employees["synced-1"] = &employee.Employee{
				ID: "synced-1", Name: "Synced", Email: "s@harren-group.com",
				Status: employee.StatusActive, ExternalID: strPtr("ext-1"),
			}

			Expect(service.DeleteEmployee("synced-1")).To(Succeed())
			Expect(repo.deletedIDs).To(BeEmpty())
			Expect(repo.statusChanges["synced-1"]).To(Equal(employee.StatusDeleted))
		})
	})

	Describe("GetEmployeePhoto", func() {
		BeforeEach(func() {
			repo.employees["synced-1"] = &employee.Employee{
				ID: "synced-1", Name: "Synced", Email: "s@harren-group.com",
				Status: employee.StatusActive, ExternalID: strPtr("ext-1"),
			}
		})

		It("streams the directory photo for a synced employee", func() {
			photos.photos["ext-1"] = []byte{0xFF, 0xD8, 0xFF}

			photo, err := service.GetEmployeePhoto(context.Background(), "synced-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(photo).To(Equal([]byte{0xFF, 0xD8, 0xFF}))
		})

		It("reports not found for employees without a directory link", func() {
			repo.employees["local-1"] = &employee.Employee{
				ID: "local-1", Name: "Manual", Email: "m@harren-group.com",
			}

			_, err := service.GetEmployeePhoto(context.Background(), "local-1")
			Expect(err).To(MatchError(internal.ErrPhotoNotFound))
		})

		It("reports not found when the directory has no photo", func() {
			_, err := service.GetEmployeePhoto(context.Background(), "synced-1")
			Expect(err).To(MatchError(internal.ErrPhotoNotFound))
		})

		It("wraps directory failures as external errors", func() {
			photos.err = errors.New("connection reset")

			_, err := service.GetEmployeePhoto(context.Background(), "synced-1")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDirectoryFetch))
		})
	})
})
