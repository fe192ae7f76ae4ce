package company

type Company struct {
	ID      string
	Name    string
	TaxID   string
	Enabled bool
}
