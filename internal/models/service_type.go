package models

// ServiceType is a read-only lookup row. The client loads the table once
// per session and never mutates it.
type ServiceType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Credits     int    `json:"credits"`
	Description string `json:"description"`
}
