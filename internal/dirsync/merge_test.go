package dirsync_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Boateng555/assettrack-harren/internal/asset"
	"github.com/Boateng555/assettrack-harren/internal/dirsync"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

func strPtr(s string) *string { return &s }

var _ = Describe("MergeEmployee", func() {
	var existing *employee.Employee

	BeforeEach(func() {
		existing = &employee.Employee{
			Name:       "Anna Petersen",
			Email:      "anna@harren-group.com",
			Department: "Fleet Management",
			Phone:      "+49 40 380380-916",
			JobTitle:   strPtr("Fleet Manager"),
		}
	})

	It("applies changed fields and reports their names", func() {
		changed := dirsync.MergeEmployee(existing, &employee.Employee{
			Name:  "Anna Petersen-Meyer",
			Email: "anna@harren-group.com",
			Phone: "+49 40 380380-917",
		})

		Expect(changed).To(ConsistOf("name", "phone"))
		Expect(existing.Name).To(Equal("Anna Petersen-Meyer"))
		Expect(existing.Phone).To(Equal("+49 40 380380-917"))
	})

	It("never clears stored data with empty incoming values", func() {
		changed := dirsync.MergeEmployee(existing, &employee.Employee{})

		Expect(changed).To(BeEmpty())
		Expect(existing.Name).To(Equal("Anna Petersen"))
		Expect(existing.Department).To(Equal("Fleet Management"))
		Expect(existing.JobTitle).To(Equal(strPtr("Fleet Manager")))
	})

	It("reports nothing when incoming matches stored data", func() {
		changed := dirsync.MergeEmployee(existing, &employee.Employee{
			Name:       "Anna Petersen",
			Email:      "anna@harren-group.com",
			Department: "Fleet Management",
			Phone:      "+49 40 380380-916",
			JobTitle:   strPtr("Fleet Manager"),
		})

		Expect(changed).To(BeEmpty())
	})

	It("fills previously unset optional fields", func() {
		changed := dirsync.MergeEmployee(existing, &employee.Employee{
			EmployeeNumber: strPtr("H-1042"),
		})

		Expect(changed).To(ConsistOf("employee_number"))
		Expect(existing.EmployeeNumber).To(Equal(strPtr("H-1042")))
	})
})

var _ = Describe("MergeAsset", func() {
	It("applies device fields without touching assignment state", func() {
		owner := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
		registered := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		existing := &asset.Asset{
			Name:         "Anna's Laptop",
			AssetType:    asset.TypeLaptop,
			SerialNumber: "SN-1",
			Status:       asset.StatusAssigned,
			AssignedToID: &owner,
		}

		changed := dirsync.MergeAsset(existing, &asset.Asset{
			Name:            "Anna's Laptop",
			AssetType:       asset.TypeLaptop,
			SerialNumber:    "SN-1",
			OperatingSystem: strPtr("Windows"),
			OSVersion:       strPtr("11.0.26100"),
			RegisteredAt:    &registered,
		})

		Expect(changed).To(ConsistOf("operating_system", "os_version", "registered_at"))
		Expect(existing.Status).To(Equal(asset.StatusAssigned))
		Expect(existing.AssignedToID).To(Equal(&owner))
		Expect(existing.RegisteredAt).To(Equal(&registered))
	})

	It("is a no-op when run twice with the same incoming data", func() {
		existing := &asset.Asset{Name: "Spare", AssetType: asset.TypeOther, SerialNumber: "SN-2"}
		incoming := &asset.Asset{
			Name:         "Spare Monitor",
			AssetType:    asset.TypeMonitor,
			SerialNumber: "SN-2",
			Model:        strPtr("U2723QE"),
		}

		Expect(dirsync.MergeAsset(existing, incoming)).To(ConsistOf("name", "asset_type", "model"))
		Expect(dirsync.MergeAsset(existing, incoming)).To(BeEmpty())
	})
})
