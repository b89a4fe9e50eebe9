package model

// CatalogOptions backs the datalist suggestions on the management page.
type CatalogOptions struct {
	Brands        []string `json:"brands"`
	Models        []string `json:"models"`
	Manufacturers []string `json:"manufacturers"`
	Customers     []string `json:"customers"`
}
