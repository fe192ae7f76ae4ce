package store

type Store struct {
	ID      string
	Name    string
	Address *string
}
