package dirsync

import (
	"strings"

	"github.com/Boateng555/assettrack-harren/internal/employee"
)

// DeriveOffice guesses the office location from a phone number and the
// resolved department. Returns "" when the number carries no site signal
// (notably German mobile numbers).
func DeriveOffice(phone, department string) string {
	if department == employee.DepartmentExternal {
		return employee.OfficeOther
	}
	return officeByPhone(phone)
}

func officeByPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	if strings.HasPrefix(phone, "+49") {
		area := germanAreaCode(phone)
		switch {
		case strings.HasPrefix(area, "40"):
			return employee.OfficeHamburg
		case strings.HasPrefix(area, "421"):
			return employee.OfficeBernem
		}
		if germanMobileArea(area) {
			return ""
		}
		// other German landlines belong to teams anchored in Hamburg
		return employee.OfficeHamburg
	}

	if germanMobileNumber(phone) {
		return ""
	}
	// foreign numbers default to the Hamburg headquarters
	return employee.OfficeHamburg
}

// germanAreaCode extracts the area code of a +49 number. Spaced numbers
// like "+49 40 380380" carry it as the first group; compact ones are
// matched against the known city codes, falling back to the first two
// digits.
func germanAreaCode(phone string) string {
	rest := strings.TrimPrefix(phone, "+49")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	digits := fields[0]
	for _, code := range []string{"40", "421", "30", "89", "221"} {
		if strings.HasPrefix(digits, code) {
			return code
		}
	}
	if len(digits) >= 2 {
		return digits[:2]
	}
	return digits
}

func germanMobileArea(area string) bool {
	return strings.HasPrefix(area, "15") ||
		strings.HasPrefix(area, "16") ||
		strings.HasPrefix(area, "17")
}

func germanMobileNumber(phone string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return strings.HasPrefix(digits, "015") ||
		strings.HasPrefix(digits, "016") ||
		strings.HasPrefix(digits, "017")
}
