package models

// Label is shared reference data. It does not know which posts use it.
type Label struct {
	ID     int64
	Name   string
	Status Status
}
