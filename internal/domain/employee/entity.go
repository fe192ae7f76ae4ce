package employee

import "strings"

type Employee struct {
	ID         string
	CompanyID  string
	FirstName  string
	LastName   string
	NationalID string
	Email      *string
	Phone      *string
	Enabled    bool
}

// FullName joins first and last name, skipping empty parts.
func (e Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}
