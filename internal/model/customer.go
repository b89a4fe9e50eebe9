package model

type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}

func (Customer) TableName() string { return "customers" }
