package models

// Departments is the fixed set a requester can submit on behalf of.
var Departments = []string{"Kitchen", "Bar", "Housekeeping", "Admin", "Maintenance"}

// IsValidDepartment reports whether dept is one of the known departments.
func IsValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}
