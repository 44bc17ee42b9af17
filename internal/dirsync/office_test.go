package dirsync_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Boateng555/assettrack-harren/internal/dirsync"
	"github.com/Boateng555/assettrack-harren/internal/employee"
)

func TestDirSync(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Sync Suite")
}

var _ = Describe("DeriveOffice", func() {
	It("puts external staff in the other bucket regardless of phone", func() {
		Expect(dirsync.DeriveOffice("+49 40 380380-0", employee.DepartmentExternal)).
			To(Equal(employee.OfficeOther))
		Expect(dirsync.DeriveOffice("", employee.DepartmentExternal)).
			To(Equal(employee.OfficeOther))
	})

	It("maps Hamburg landlines to the hamburg office", func() {
		Expect(dirsync.DeriveOffice("+49 40 380380-916", "Fleet Management")).
			To(Equal(employee.OfficeHamburg))
		Expect(dirsync.DeriveOffice("+4940123456", "IT")).
			To(Equal(employee.OfficeHamburg))
	})

	It("maps Bremen landlines to the bernem office", func() {
		Expect(dirsync.DeriveOffice("+49 421 52009-0", "Crewing")).
			To(Equal(employee.OfficeBernem))
		Expect(dirsync.DeriveOffice("+49421987654", "Crewing")).
			To(Equal(employee.OfficeBernem))
	})

	It("maps other German landlines to hamburg", func() {
		Expect(dirsync.DeriveOffice("+49 30 1234567", "IT")).
			To(Equal(employee.OfficeHamburg))
		Expect(dirsync.DeriveOffice("+49 89 5551234", "IT")).
			To(Equal(employee.OfficeHamburg))
	})

	It("treats German mobile numbers as carrying no site signal", func() {
		Expect(dirsync.DeriveOffice("+49 151 12345678", "IT")).To(Equal(""))
		Expect(dirsync.DeriveOffice("+49 171 9876543", "IT")).To(Equal(""))
		Expect(dirsync.DeriveOffice("0151 2345678", "IT")).To(Equal(""))
	})

	It("defaults foreign numbers to hamburg", func() {
		Expect(dirsync.DeriveOffice("+31 20 1234567", "Chartering")).
			To(Equal(employee.OfficeHamburg))
		Expect(dirsync.DeriveOffice("+1 555 0100", "Chartering")).
			To(Equal(employee.OfficeHamburg))
	})

	It("returns no office when the phone is empty", func() {
		Expect(dirsync.DeriveOffice("", "IT")).To(Equal(""))
		Expect(dirsync.DeriveOffice("   ", "IT")).To(Equal(""))
	})
})
