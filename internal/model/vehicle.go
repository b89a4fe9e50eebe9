package model

// Vehicle is identified by the (brand, model, manufacturer) triple; two
// rows never share the same triple.
type Vehicle struct {
	ID             int64  `json:"id"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	ManufacturerID int64  `json:"manufacturer_id"`
}

func (Vehicle) TableName() string { return "vehicles" }
